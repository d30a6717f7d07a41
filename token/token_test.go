// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

func TestOperators(t *testing.T) {
	t.Parallel()

	for op := token.Equal; op <= token.Exists; op++ {
		got, ok := token.LookupOperator(op.String())
		assert.True(t, ok, "%#v", op)
		assert.Equal(t, op, got)
	}

	_, ok := token.LookupOperator("")
	assert.False(t, ok)
	_, ok = token.LookupOperator("=>")
	assert.False(t, ok)
	assert.Equal(t, "token.GreaterEqual", token.GreaterEqual.GoString())
}

func TestTags(t *testing.T) {
	t.Parallel()

	for _, kind := range []scalar.Kind{
		scalar.I32, scalar.U32, scalar.I64, scalar.U64, scalar.F32,
		scalar.F64, scalar.Bool, scalar.Quoted, scalar.Unquoted, scalar.Rgb,
	} {
		tag, ok := token.TagOf(kind)
		assert.True(t, ok, "%v", kind)
		got, _, ok := tag.Payload()
		assert.True(t, ok, "%v", kind)
		assert.Equal(t, kind, got)
	}

	_, ok := token.TagOf(scalar.Token)
	assert.False(t, ok)

	_, size, _ := token.TagRgb.Payload()
	assert.Equal(t, 22, size)
	_, size, _ = token.TagQuoted.Payload()
	assert.Equal(t, token.Prefixed, size)

	assert.True(t, token.TagOpen.IsControl())
	assert.False(t, token.TagOpen.IsID())
	assert.False(t, token.TagI32.IsID())
	assert.True(t, token.Tag(0x2a).IsID())
	assert.True(t, token.Tag(0xbeef).IsID())
}
