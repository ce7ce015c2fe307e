// Package adapter はバックエンドごとのリソースアダプタを提供する。
//
// 各アダプタはバックエンド固有のパス形状・フィールド命名・クエリ規約を
// カプセル化し、ゲートウェイの入力から送信リクエスト（Call）を組み立てる。
// ネットワークI/Oはこのパッケージでは行わない。送信前に検査できる制約
// （必須フィールド、列挙値、価格の正値など）はここでValidationErrorとして
// 弾き、ドメインの正当性検証そのものは各バックエンドに委ねる。
package adapter
