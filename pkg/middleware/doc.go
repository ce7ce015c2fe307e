// Package middleware はゲートウェイのGinルーターに適用する共通ミドルウェアを提供する。
//
// パニックリカバリ、CORS設定、リクエストID付与を含む。
// 認証トークンの検証はIdentityバックエンドの責務であり、
// このパッケージではトークンに一切触れない。
package middleware
