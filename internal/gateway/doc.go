// Package gateway はAPIゲートウェイのHTTPサーバーを提供する。
//
// クライアントからの呼び出しを受け、リソースアダプタで送信内容を解決し、
// Bearerトークンを添付してバックエンドへディスパッチし、応答を統一
// エンベロープへ変換して返す。ドメインデータの永続化や認可判断は行わず、
// すべて各バックエンドに委ねる。
package gateway
