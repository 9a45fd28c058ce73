package rekogbot

type Message struct {
	ID   int
	Text string
	From User
}

type User struct {
	ID       int64
	Username string
}
