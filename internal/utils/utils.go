package utils

import "math/rand"

// Same alphabet the room codes have always used: base36, uppercased.
const roomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRoomCode returns a random code of the given length. Uniqueness
// against live rooms is the registry's job.
func GenerateRoomCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
