package data

// MessageDivider はメッセージウィンドウの改ページを表す行です。
const MessageDivider = "\r"

// MessageQueue はバトルメッセージを発行順に保持します。
// core.MessageSink を実装し、メッセージウィンドウが Drain で取り出します。
type MessageQueue struct {
	lines []string
}

// NewMessageQueue は空のキューを返します。
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{}
}

// Push はメッセージを末尾に追加します。
func (q *MessageQueue) Push(text string) {
	q.lines = append(q.lines, text)
}

// Lines はまだ取り出されていないメッセージのコピーを返します。
func (q *MessageQueue) Lines() []string {
	return append([]string(nil), q.lines...)
}

// Len は保持しているメッセージ数を返します。
func (q *MessageQueue) Len() int {
	return len(q.lines)
}

// Drain はすべてのメッセージを取り出し、キューを空にします。
func (q *MessageQueue) Drain() []string {
	lines := q.lines
	q.lines = nil
	return lines
}

// Clear はメッセージを破棄します。
func (q *MessageQueue) Clear() {
	q.lines = nil
}
