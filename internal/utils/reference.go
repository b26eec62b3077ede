package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	clientPrefix      = "CLI"
	accountPrefix     = "EPA"
	transactionPrefix = "OPE"
)

var suffixSpace = big.NewInt(10000)

// ReferenceGenerator produces client numbers, account numbers and transaction references:
// a three-letter prefix, the unix time in milliseconds and four random digits.
type ReferenceGenerator struct {
	now func() time.Time
}

// NewReferenceGenerator creates a generator reading the wall clock.
func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{now: time.Now}
}

// ClientNumber returns a new CLI... identifier.
func (g *ReferenceGenerator) ClientNumber() string {
	return g.next(clientPrefix)
}

// AccountNumber returns a new EPA... identifier.
func (g *ReferenceGenerator) AccountNumber() string {
	return g.next(accountPrefix)
}

// TransactionReference returns a new OPE... identifier.
func (g *ReferenceGenerator) TransactionReference() string {
	return g.next(transactionPrefix)
}

func (g *ReferenceGenerator) next(prefix string) string {
	suffix, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unavailable
		suffix = big.NewInt(g.now().UnixNano() % 10000)
	}
	return fmt.Sprintf("%s%d%04d", prefix, g.now().UnixMilli(), suffix.Int64())
}
