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
	"go.uber.org/multierr"
)

// Validator checks one invariant.
type Validator interface {
	Validate() error
}

// Chain runs a sequence of validators and folds their violations into a
// single error. Chains collect every violation by default; FailFast stops
// at the first.
type Chain struct {
	failFast   bool
	validators []Validator
}

// ChainOption configures a chain at creation time.
type ChainOption func(*Chain)

// New creates an empty validation chain.
func New(opts ...ChainOption) *Chain {
	chain := new(Chain)
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// FailFast stops the chain at the first violation.
func FailFast() ChainOption {
	return func(x *Chain) { x.failFast = true }
}

// AllErrors makes the chain collect every violation.
func AllErrors() ChainOption {
	return func(x *Chain) { x.failFast = false }
}

// AddValidator appends a validator to the chain.
func (x *Chain) AddValidator(v Validator) *Chain {
	x.validators = append(x.validators, v)
	return x
}

// AddAssertion appends a boolean assertion to the chain.
func (x *Chain) AddAssertion(isTrue bool, message string) *Chain {
	return x.AddValidator(NewBooleanValidator(isTrue, message))
}

// Validate runs the chain and returns the accumulated violations, nil when
// every validator passed.
func (x *Chain) Validate() error {
	var violations error
	for _, v := range x.validators {
		if err := v.Validate(); err != nil {
			if x.failFast {
				return err
			}
			violations = multierr.Append(violations, err)
		}
	}
	return violations
}
