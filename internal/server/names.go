package server

import "math/rand"

// Display names mimic a "first last" full name. The pool is small and
// collisions are fine; sessions are identified by ID, not name.
var (
	firstNames = []string{
		"Alice", "Bruno", "Clara", "Daniel", "Elena", "Felix", "Greta",
		"Hugo", "Irene", "Jonas", "Karin", "Leon", "Marta", "Nils",
		"Olga", "Pavel", "Rita", "Stefan", "Tamara", "Viktor",
	}
	lastNames = []string{
		"Adler", "Bergman", "Castro", "Dvorak", "Eriksen", "Fischer",
		"Gruber", "Hansen", "Ivanov", "Jensen", "Kovacs", "Lindqvist",
		"Moreau", "Novak", "Olsen", "Petrov", "Richter", "Sokolov",
		"Tanaka", "Weber",
	}
)

func randomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}
