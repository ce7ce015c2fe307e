// Package translate はバックエンドの応答と各種エラーを、ゲートウェイが
// クライアントへ返す統一エンベロープ（success / message / data）へ写す。
//
// 2xx応答は宣言された結果型へ解析し、解析失敗はSerializationErrorとして
// 扱う。非2xx応答はステータスコードとエラーボディをそのまま透過する。
// トランスポート障害は502/504の固定マッピングで、内部アドレスや
// エラーチェーンをクライアントへ出さない。
package translate
