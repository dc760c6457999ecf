package ctxkeys

type Key int

const (
	EditorID Key = iota // string: browser editor session id from the cookie
)
