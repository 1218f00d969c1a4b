package domain

const (
	DefaultRadius   = 2.0
	DefaultStrength = 50.0
)
