/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package generator

import "github.com/vhive-serverless/cpubench/pkg/common"

const twoPow32 = 4294967296.0

// XorShift32 is Marsaglia's 32-bit shift-XOR generator (13, 17, 5). It has a
// period of 2^32-1 and never leaves the zero state once in it, which is why
// a zero seed is rejected.
type XorShift32 struct {
	state uint32
}

func NewXorShift32(seed uint32) (XorShift32, error) {
	if seed == 0 {
		return XorShift32{}, common.ErrZeroSeed
	}
	return XorShift32{state: seed}, nil
}

func (r *XorShift32) NextUint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// NextFloat64 maps one draw onto [0, 1). Both operands are exact doubles, so
// the quotient is bit-identical in every IEEE-754 runtime.
func (r *XorShift32) NextFloat64() float64 {
	return float64(r.NextUint32()) / twoPow32
}

func (r *XorShift32) State() uint32 {
	return r.state
}
