// Package httpclient はバックエンドサービスへのHTTPディスパッチを行うクライアントを提供する。
//
// バックエンドごとにコネクションプールを共有するクライアントを1つ保持し、
// ヘッダーやタイムアウトはすべてリクエスト単位で構築する。
// 共有クライアントのデフォルトヘッダーを変更すると並行リクエスト間で
// 認証情報が混ざるため、このパッケージはそれを許さない。
package httpclient
