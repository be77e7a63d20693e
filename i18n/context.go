// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import "context"

type contextKeyType struct{}

var codeKey = contextKeyType{}

// WithCode stores c in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that performs
// translations. The ctx must not be nil.
func WithCode(ctx context.Context, c Code) context.Context {
	return context.WithValue(ctx, codeKey, c)
}

// CodeFrom returns the language code stored in ctx, or [DefaultCode] if
// none is present. It never returns an empty code.
func CodeFrom(ctx context.Context) Code {
	if ctx != nil {
		if c, _ := ctx.Value(codeKey).(Code); c != "" {
			return c
		}
	}

	return DefaultCode
}
