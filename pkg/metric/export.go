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

package metric

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"

	log "github.com/sirupsen/logrus"
)

type ParamsDocument struct {
	N1      uint64 `json:"n1"`
	N2      uint64 `json:"n2"`
	Warmup  int    `json:"warmup"`
	Repeats int    `json:"repeats"`
}

// ResultDocument carries the digest as the full 64-bit pattern in hex.
// DigestBits tells the reader how many low bits are significant.
type ResultDocument struct {
	ID         string           `json:"id"`
	Digest     string           `json:"digest_u64"`
	DigestBits int              `json:"digest_bits"`
	TimeMs     common.TimeStats `json:"time_ms"`
}

type ReportDocument struct {
	RunID       string           `json:"run_id"`
	Lang        string           `json:"lang"`
	Seed        uint32           `json:"seed"`
	Params      ParamsDocument   `json:"params"`
	Results     []ResultDocument `json:"results"`
	FinalDigest string           `json:"final_digest_u64"`
}

type SampleRecord struct {
	TestID string  `csv:"test_id"`
	Run    int     `csv:"run"`
	TimeMs float64 `csv:"time_ms"`
}

func NewReportDocument(report *common.Report) ReportDocument {
	doc := ReportDocument{
		RunID: report.RunID,
		Lang:  report.Lang,
		Seed:  report.Seed,
		Params: ParamsDocument{
			N1:      report.Params.N1,
			N2:      report.Params.N2,
			Warmup:  report.Params.Warmup,
			Repeats: report.Params.Repeats,
		},
		Results:     make([]ResultDocument, 0, len(report.Results)),
		FinalDigest: report.FinalDigestHex(),
	}

	for _, result := range report.Results {
		doc.Results = append(doc.Results, ResultDocument{
			ID:         result.ID,
			Digest:     result.DigestHex(),
			DigestBits: result.DigestBits,
			TimeMs:     result.Time,
		})
	}

	return doc
}

func WriteReport(w io.Writer, report *common.Report) error {
	data, err := json.MarshalIndent(NewReportDocument(report), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

func SaveReport(path string, report *common.Report) (err error) {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer closeOutput(f, path, &err)

	return WriteReport(f, report)
}

// SummaryLines renders one human readable line per test.
func SummaryLines(report *common.Report) []string {
	lines := make([]string, 0, len(report.Results)+1)
	for _, r := range report.Results {
		lines = append(lines, fmt.Sprintf("%s digest=%s min=%.3fms p50=%.3fms p95=%.3fms max=%.3fms",
			r.ID, r.DigestHex(), r.Time.Min, r.Time.P50, r.Time.P95, r.Time.Max))
	}
	lines = append(lines, "final_digest="+report.FinalDigestHex())

	return lines
}

func SampleRecords(report *common.Report) []SampleRecord {
	var records []SampleRecord
	for _, result := range report.Results {
		for i, sample := range result.Samples {
			records = append(records, SampleRecord{
				TestID: result.ID,
				Run:    i + 1,
				TimeMs: sample,
			})
		}
	}

	return records
}

func ExportSamples(path string, report *common.Report) (err error) {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer closeOutput(f, path, &err)

	records := SampleRecords(report)
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return errors.Wrapf(err, "writing samples to %s", path)
	}

	log.Debugf("Wrote %d timing samples to %s", len(records), path)
	return nil
}

func createOutputFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating output file")
	}

	return f, nil
}

// closeOutput reports a failed Close unless an earlier error is already
// being returned; buffered data may only hit the disk on Close.
func closeOutput(c io.Closer, path string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = errors.Wrapf(cerr, "closing %s", path)
	}
}
