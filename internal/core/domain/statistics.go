package domain

import "github.com/shopspring/decimal"

// Statistics is the administrative overview of the savings book.
type Statistics struct {
	ClientCount      int64                   `json:"clientCount"`
	AccountCount     int64                   `json:"accountCount"`
	TotalBalance     decimal.Decimal         `json:"totalBalance"`
	AverageBalance   decimal.Decimal         `json:"averageBalance"`
	AccountsByStatus map[AccountStatus]int64 `json:"accountsByStatus"`
}
