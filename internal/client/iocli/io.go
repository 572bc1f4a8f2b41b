package iocli

// IO - терминальный ввод-вывод команд клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput печатает prompt и читает одну строку без перевода строки.
	// В конце ввода возвращает io.EOF.
	ReadInput(prompt string) (string, error)
	// ReadPassword читает строку без эха, если ввод - терминал
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
