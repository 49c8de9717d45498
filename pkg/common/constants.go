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

package common

const (
	Int32MixID = "T1_INT32_MIX"
	Fp64DotID  = "T2_FP64_DOT"

	Lang = "go"
)

// Defaults carried over from the reference runs so reports stay comparable
// across runtimes.
const (
	DefaultSeed    uint32 = 12345
	DefaultN1      uint64 = 300_000_000
	DefaultN2      uint64 = 200_000_000
	DefaultWarmup         = 3
	DefaultRepeats        = 9
)

const (
	P50 = 0.50
	P95 = 0.95

	OneMillisecondInNanoseconds = 1_000_000.0
)

type BenchPhase int

const (
	WarmupPhase BenchPhase = iota
	MeasurePhase
)

func (p BenchPhase) String() string {
	switch p {
	case WarmupPhase:
		return "warmup"
	case MeasurePhase:
		return "measure"
	default:
		return "unknown"
	}
}

type StepStatus int

const (
	StepStarted StepStatus = iota
	StepFinished
)

func (s StepStatus) String() string {
	if s == StepStarted {
		return "started"
	}
	return "finished"
}
