// Package dto はwatchlist APIのリクエスト/レスポンス型を定義します。
package dto

// AddRequest は POST /api/stocks/watchlist のボディです。
type AddRequest struct {
	Symbol string `json:"symbol"`
}

// Result は追加・削除の結果です。
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
