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

package kernel

import (
	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
)

// Kernel is one arithmetic test. Run must build its own generator from seed
// so that consecutive invocations share no state.
type Kernel interface {
	ID() string
	DigestBits() int
	Run(n uint64, seed uint32) (uint64, error)
}

type int32MixKernel struct{}

func (int32MixKernel) ID() string      { return common.Int32MixID }
func (int32MixKernel) DigestBits() int { return 32 }

func (int32MixKernel) Run(n uint64, seed uint32) (uint64, error) {
	digest, err := Int32Mix(n, seed)
	return uint64(digest), err
}

type fp64DotKernel struct{}

func (fp64DotKernel) ID() string      { return common.Fp64DotID }
func (fp64DotKernel) DigestBits() int { return 64 }

func (fp64DotKernel) Run(n uint64, seed uint32) (uint64, error) {
	return Fp64Dot(n, seed)
}

var (
	T1 Kernel = int32MixKernel{}
	T2 Kernel = fp64DotKernel{}
)

// Suite returns the kernels in the order they must be measured.
func Suite() []Kernel {
	return []Kernel{T1, T2}
}

func Lookup(id string) (Kernel, error) {
	for _, k := range Suite() {
		if k.ID() == id {
			return k, nil
		}
	}
	return nil, errors.Errorf("unknown kernel %q", id)
}
