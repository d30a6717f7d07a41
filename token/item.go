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

package token

import (
	"fmt"

	"github.com/bufbuild/clausewitz/scalar"
)

// Item is a lexical item: one token of either encoding.
//
// Items are a closed sum type discriminated by Kind. Which of the other
// fields are meaningful depends on it:
//
//   - [Unquoted], [Quoted], and [Binary] carry a Scalar.
//   - [Op] carries an Op.
//   - [ID] carries an ID, and a Scalar that is an unresolved
//     [scalar.Token] viewing the two bytes of the id.
//
// Offset and End give the item's byte range in the input. For a quoted string
// the range includes the quotes.
type Item struct {
	Scalar scalar.Scalar
	Offset int
	End    int
	Kind   Kind
	Op     Operator
	ID     uint16
}

// IsScalar returns whether this item can be used as a key or a value.
func (i Item) IsScalar() bool {
	switch i.Kind {
	case Unquoted, Quoted, Binary, ID:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (i Item) String() string {
	switch i.Kind {
	case Unquoted, Quoted:
		return fmt.Sprintf("%v(%q)@%d", i.Kind, i.Scalar.Bytes(), i.Offset)
	case Binary:
		return fmt.Sprintf("%v(%v %s)@%d", i.Kind, i.Scalar.Kind(), i.Scalar, i.Offset)
	case Op:
		return fmt.Sprintf("%v(%v)@%d", i.Kind, i.Op, i.Offset)
	case ID:
		return fmt.Sprintf("%v(0x%04x)@%d", i.Kind, i.ID, i.Offset)
	default:
		return fmt.Sprintf("%v@%d", i.Kind, i.Offset)
	}
}
