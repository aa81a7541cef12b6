// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"errors"
	"regexp"
)

// identifierPattern matches actor and resource identifiers: word characters
// with non-leading '-' or '_'.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// identifierValidator validates actor identifiers.
type identifierValidator struct {
	fieldName string
	id        string
}

var _ Validator = (*identifierValidator)(nil)

// NewIdentifierValidator creates an instance of the identifier validator.
func NewIdentifierValidator(fieldName, id string) Validator {
	return &identifierValidator{fieldName: fieldName, id: id}
}

// Validate executes the validation
func (v *identifierValidator) Validate() error {
	if v.id == "" {
		return errors.New(v.fieldName + " is required")
	}
	if !identifierPattern.MatchString(v.id) {
		return errors.New(v.fieldName + " must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")
	}
	return nil
}
