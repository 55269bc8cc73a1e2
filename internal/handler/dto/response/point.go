package response

import "futsal-reserve/internal/usecase/queries"

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type LedgerHistoryResponse struct {
	Entries []*queries.LedgerEntryView `json:"entries"`
}
