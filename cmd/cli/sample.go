package main

import (
	"strconv"
	"strings"

	"bootcompare/domain/stats"
	"bootcompare/internal/errors"
)

// parseSample parses comma or whitespace separated numbers
func parseSample(s string) (stats.Sample, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, errors.InvalidInput("sample is empty")
	}

	sample := make(stats.Sample, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &errors.AppError{Code: errors.CodeInvalidInput, Message: "bad value " + strconv.Quote(f), Cause: err}
		}
		sample = append(sample, v)
	}
	return sample, nil
}
