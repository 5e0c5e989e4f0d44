package drip

// ObjBuckets 对象哈希表桶数。
// 桶数固定、冲突走链表，是可调常量而非协议要求。
const ObjBuckets = 32

// MaxDepth JSON 嵌套最大深度（防栈溢出攻击）。
// 超出时解析确定性失败（KindDepthExceeded），不会静默截断。
const MaxDepth = 512

// ErrContextLen 解析错误时展示的上下文窗口长度（字节），
// 出错位置前后各一半。
const ErrContextLen = 60

// stringBufSize 字符串缓冲初始大小（不够时按倍增长）
const stringBufSize = 16

// arrayBufSize 数组元素缓冲初始容量
const arrayBufSize = 16

// 解析失败时 CLI 的退出码，按错误类别区分：
//
//	CodeUnexpectedEOF  - 输入流提前结束
//	CodeUnexpectedChar - 当前位置出现语法外的字节
//	CodeDuplicateKey   - 对象字面量中出现重复键
//	CodeDepthExceeded  - 嵌套超过 MaxDepth
const (
	CodeUnexpectedEOF  = 200
	CodeUnexpectedChar = 201
	CodeDuplicateKey   = 202
	CodeDepthExceeded  = 203
)
