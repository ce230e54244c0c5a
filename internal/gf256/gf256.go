// Package gf256 implements GF(256) field arithmetic and the digest-verified
// Shamir secret sharing primitive that SLIP-39 builds its group and member
// splits on top of.
package gf256

var expTable [256]byte
var logTable [256]byte

func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		expTable[i] = x
		logTable[x] = byte(i)

		// Multiply x by the generator 3 in GF(256), reducing modulo the
		// AES/Rijndael polynomial x^8+x^4+x^3+x+1 (0x11B).
		hi := x & 0x80
		x <<= 1
		if hi != 0 {
			x ^= 0x1B
		}
		x ^= expTable[i]
	}
	expTable[255] = expTable[0]
}

// add returns a+b in GF(256); identical to subtraction since the field has
// characteristic 2.
func add(a, b byte) byte {
	return a ^ b
}

// mul returns a*b in GF(256).
func mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	sum := int(logTable[a]) + int(logTable[b])
	return expTable[sum%255]
}

// div returns a/b in GF(256). b must be nonzero.
func div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	diff := (int(logTable[a]) - int(logTable[b]) + 255) % 255
	return expTable[diff]
}

// point is a single (x, y) sample of a polynomial over GF(256), with y one
// byte of a multi-byte secret.
type point struct {
	x byte
	y byte
}

// evaluate computes the value at x of the polynomial with the given
// coefficients (coefficients[0] is the constant term) using Horner's
// method.
func evaluate(coefficients []byte, x byte) byte {
	if x == 0 {
		return coefficients[0]
	}
	result := coefficients[len(coefficients)-1]
	for i := len(coefficients) - 2; i >= 0; i-- {
		result = add(mul(result, x), coefficients[i])
	}
	return result
}

// interpolate performs Lagrange interpolation over pts and returns the
// value of the implied polynomial at x.
func interpolate(pts []point, x byte) byte {
	var result byte
	for i, pi := range pts {
		var basis byte = 1
		for j, pj := range pts {
			if i == j {
				continue
			}
			num := add(x, pj.x)
			denom := add(pi.x, pj.x)
			basis = mul(basis, div(num, denom))
		}
		result = add(result, mul(pi.y, basis))
	}
	return result
}
