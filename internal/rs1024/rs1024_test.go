package rs1024

import "testing"

func TestCreateVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	data := []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	checksum := Create(data)

	full := append(append([]uint16{}, data...), checksum[:]...)
	if !Verify(full) {
		t.Fatal("Verify rejected a freshly created checksum")
	}
}

func TestVerifyRejectsMutation(t *testing.T) {
	t.Parallel()

	data := []uint16{100, 200, 300, 400, 500}
	checksum := Create(data)
	full := append(append([]uint16{}, data...), checksum[:]...)

	for i := range full {
		mutated := append([]uint16{}, full...)
		mutated[i] = (mutated[i] + 1) % 1024
		if Verify(mutated) {
			t.Errorf("Verify accepted a mutation at word %d", i)
		}
	}
}
