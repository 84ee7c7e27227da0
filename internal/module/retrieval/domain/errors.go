package domain

import "errors"

var (
	// ErrDimensionMismatch は比較するベクトルの次元が一致しない場合のエラー
	// 取り込み時と検索時で次元数の設定が変わったことを示します
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyPrompt はプロンプトが空の場合のエラー
	ErrEmptyPrompt = errors.New("prompt is required")

	// ErrInvalidNetworkID はネットワークIDが不正な場合のエラー
	ErrInvalidNetworkID = errors.New("valid networkId is required")

	// ErrNetworkNotFound はネットワークが存在しない場合のエラー
	ErrNetworkNotFound = errors.New("network not found")

	// ErrDanglingReference は参照先のネットワークやプロフィールが存在しない場合のエラー
	ErrDanglingReference = errors.New("referenced record does not exist")
)
