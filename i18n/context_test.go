// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithCode(context.Background(), "fr")

	assert.Equal(t, Code("fr"), CodeFrom(ctx))
}

func TestCodeFromEmptyContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCode, CodeFrom(context.Background()))
	assert.Equal(t, DefaultCode, CodeFrom(nil)) //nolint:staticcheck
}

func TestCodeFromOverwrite(t *testing.T) {
	t.Parallel()

	ctx := WithCode(context.Background(), "fr")
	ctx = WithCode(ctx, "ja")

	assert.Equal(t, Code("ja"), CodeFrom(ctx))
}
