// Package registry はバックエンドサービス名からベースURLを解決するレジストリを提供する。
//
// 起動時に一度だけ読み込まれ、以降は読み取り専用となる。
// アドレスの欠落や不正なURLは起動時のConfigurationErrorであり、
// リクエスト処理中のエラーにはならない。
package registry
