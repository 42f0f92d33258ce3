package storageutil

type ReadJob interface {
	Read()
}

type ReadJobResult interface {
	Error() error
}
