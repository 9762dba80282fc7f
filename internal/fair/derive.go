package fair

// DeriveBytes returns length bytes of the outcome stream for the given
// inputs, starting at cursor. This is the function offline verifiers call to
// reproduce what the live engine fed into game logic.
func DeriveBytes(serverSeed, clientSeed string, nonce uint64, cursor, length int) ([]byte, error) {
	g, err := NewByteGenerator(serverSeed, clientSeed, nonce, cursor)
	if err != nil {
		return nil, err
	}
	return g.Bytes(length), nil
}

// DeriveFloats returns count floats in [0, 1), four stream bytes each.
func DeriveFloats(serverSeed, clientSeed string, nonce uint64, cursor, count int) ([]float64, error) {
	g, err := NewByteGenerator(serverSeed, clientSeed, nonce, cursor)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = g.Float64()
	}
	return out, nil
}
