package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petreldb/petrel/internal/token"
	"github.com/petreldb/petrel/literal"
)

func compileOK(t *testing.T, tokens []token.Token, opts Options) (string, []any) {
	t.Helper()
	expr, args, err := Compile(tokens, opts)
	require.NoError(t, err)
	return expr, args
}

func TestCompile_SimpleComparison(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(21)},
	}, Options{})

	assert.Equal(t, "age > %@", expr)
	assert.Equal(t, []any{int64(21)}, args)
}

func TestCompile_EqualityEveryComparableKind(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		operand literal.Value
		wantArg any
	}{
		{"string", literal.String("ana"), "ana"},
		{"int", literal.Int(7), int64(7)},
		{"float", literal.Float(2.5), 2.5},
		{"bool", literal.Bool(true), true},
		{"timestamp", literal.Time(ts), ts},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, args := compileOK(t, []token.Token{
				token.KeyPath{Name: "field"},
				token.Comparison{Op: token.OpEqual},
				token.Operand{Value: tc.operand},
			}, Options{})

			assert.Equal(t, "field == %@", expr)
			require.Len(t, args, 1)
			assert.Equal(t, tc.wantArg, args[0])
		})
	}
}

func TestCompile_NullOperandStillBindsPlaceholder(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "nickname"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.Null{}},
	}, Options{})

	assert.Equal(t, "nickname == %@", expr)
	require.Len(t, args, 1)
	assert.Nil(t, args[0])
}

func TestCompile_NestedKeyPathDotJoins(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "address"},
		token.KeyPath{Name: "city"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.String("Oslo")},
	}, Options{})

	assert.Equal(t, "address.city == %@", expr)
	assert.Equal(t, []any{"Oslo"}, args)
}

func TestCompile_NegationRendersAtFront(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.Comparison{Op: token.OpNot},
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(21)},
	}, Options{})

	assert.Equal(t, "NOT age > %@", expr)
	assert.Equal(t, []any{int64(21)}, args)
}

func TestCompile_DoubleNegationNotSimplified(t *testing.T) {
	expr, _ := compileOK(t, []token.Token{
		token.Comparison{Op: token.OpNot},
		token.Comparison{Op: token.OpNot},
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(21)},
	}, Options{})

	assert.Equal(t, "NOT NOT age > %@", expr)
}

func TestCompile_CompoundConnectives(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreaterEqual},
		token.Operand{Value: literal.Int(21)},
		token.Compound{Op: token.OpAnd},
		token.KeyPath{Name: "name"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.String("ana")},
	}, Options{})

	assert.Equal(t, "age >= %@ && name == %@", expr)
	assert.Equal(t, []any{int64(21), "ana"}, args)
}

func TestCompile_OrConnective(t *testing.T) {
	expr, _ := compileOK(t, []token.Token{
		token.KeyPath{Name: "a"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.Int(1)},
		token.Compound{Op: token.OpOr},
		token.KeyPath{Name: "b"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.Int(2)},
	}, Options{})

	assert.Equal(t, "a == %@ || b == %@", expr)
}

func TestCompile_StringSearchKeywordsAndOptions(t *testing.T) {
	cases := []struct {
		name string
		kind token.SearchKind
		opts token.SearchOptions
		want string
	}{
		{"contains", token.SearchContains, token.SearchOptions{}, "name CONTAINS %@"},
		{"contains case-insensitive", token.SearchContains, token.SearchOptions{CaseInsensitive: true}, "name CONTAINS[c] %@"},
		{"like diacritic-insensitive", token.SearchLike, token.SearchOptions{DiacriticInsensitive: true}, "name LIKE[d] %@"},
		{"beginswith both", token.SearchBeginsWith, token.SearchOptions{CaseInsensitive: true, DiacriticInsensitive: true}, "name BEGINSWITH[cd] %@"},
		{"endswith", token.SearchEndsWith, token.SearchOptions{}, "name ENDSWITH %@"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, args := compileOK(t, []token.Token{
				token.KeyPath{Name: "name"},
				token.StringSearch{Kind: tc.kind, Pattern: "abc", Options: tc.opts},
			}, Options{})

			assert.Equal(t, tc.want, expr)
			assert.Equal(t, []any{"abc"}, args)
		})
	}
}

func TestCompile_ClosedRangeUsesBetween(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Range{Low: literal.Int(18), High: literal.Int(65), Inclusive: true},
	}, Options{})

	assert.Equal(t, "age BETWEEN {%@, %@}", expr)
	assert.Equal(t, []any{int64(18), int64(65)}, args)
}

func TestCompile_HalfOpenRangeUsesDoubleInequality(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Range{Low: literal.Int(18), High: literal.Int(65)},
	}, Options{})

	assert.Equal(t, "age >= %@ && age < %@", expr)
	assert.Equal(t, []any{int64(18), int64(65)}, args)
}

func TestCompile_HalfOpenRangeOnNestedKeyPath(t *testing.T) {
	expr, _ := compileOK(t, []token.Token{
		token.KeyPath{Name: "address"},
		token.KeyPath{Name: "zip"},
		token.Range{Low: literal.Int(1000), High: literal.Int(2000)},
	}, Options{})

	assert.Equal(t, "address.zip >= %@ && address.zip < %@", expr)
}

func TestCompile_RangeWithoutKeyPathFails(t *testing.T) {
	_, _, err := Compile([]token.Token{
		token.Range{Low: literal.Int(1), High: literal.Int(2)},
	}, Options{})

	assert.Error(t, err)
}

func TestCompile_CollectionContainsRendersValueInKeyPath(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "tags", Collection: true},
		token.CollectionContains{Value: literal.String("x")},
	}, Options{})

	assert.Equal(t, "%@ IN tags", expr)
	assert.Equal(t, []any{"x"}, args)
}

func TestCompile_CollectionContainsAfterOtherClauses(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(21)},
		token.Compound{Op: token.OpAnd},
		token.KeyPath{Name: "tags", Collection: true},
		token.CollectionContains{Value: literal.String("x")},
	}, Options{})

	assert.Equal(t, "age > %@ && %@ IN tags", expr)
	assert.Equal(t, []any{int64(21), "x"}, args)
}

func TestCompile_MapKeyProjectionContains(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "props", Collection: true},
		token.Aggregation{Op: token.AggAllKeys},
		token.CollectionContains{Value: literal.String("color")},
	}, Options{})

	assert.Equal(t, "%@ IN props.@allKeys", expr)
	assert.Equal(t, []any{"color"}, args)
}

func TestCompile_MapValueProjectionContains(t *testing.T) {
	expr, _ := compileOK(t, []token.Token{
		token.KeyPath{Name: "props", Collection: true},
		token.Aggregation{Op: token.AggAllValues},
		token.CollectionContains{Value: literal.String("red")},
	}, Options{})

	assert.Equal(t, "%@ IN props.@allValues", expr)
}

func TestCompile_AggregationRangeSynthesis(t *testing.T) {
	// The builder lowers range containment over a numeric collection to a
	// min/max aggregation comparison; the compiler just renders the tokens.
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "scores", Collection: true},
		token.Aggregation{Op: token.AggMin},
		token.Comparison{Op: token.OpGreaterEqual},
		token.Operand{Value: literal.Int(1)},
		token.Compound{Op: token.OpAnd},
		token.KeyPath{Name: "scores", Collection: true},
		token.Aggregation{Op: token.AggMax},
		token.Comparison{Op: token.OpLess},
		token.Operand{Value: literal.Int(10)},
	}, Options{})

	assert.Equal(t, "scores.@min >= %@ && scores.@max < %@", expr)
	assert.Equal(t, []any{int64(1), int64(10)}, args)
}

func TestCompile_SubqueryModeSubstitutesCorrelationVariable(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "friends", Collection: true},
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreaterEqual},
		token.Operand{Value: literal.Int(21)},
	}, Options{Subquery: true})

	assert.Equal(t, "$obj.age >= %@", expr)
	assert.Equal(t, []any{int64(21)}, args)
}

func TestCompile_SubqueryModeLeavesScalarKeyPathsAlone(t *testing.T) {
	expr, _ := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(1)},
	}, Options{Subquery: true})

	assert.Equal(t, "age > %@", expr)
}

func TestCompile_SubqueryTokenSplicesInnerArguments(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.Subquery{
			Collection: "friends",
			Expr:       "$obj.age >= %@",
			Args:       []any{int64(21)},
		},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(0)},
	}, Options{})

	assert.Equal(t, "SUBQUERY(friends, $obj, $obj.age >= %@).@count > %@", expr)
	assert.Equal(t, []any{int64(21), int64(0)}, args)
}

func TestCompile_SubqueryArgumentOrderWithSurroundingOperands(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "name"},
		token.Comparison{Op: token.OpEqual},
		token.Operand{Value: literal.String("ana")},
		token.Compound{Op: token.OpAnd},
		token.Subquery{
			Collection: "friends",
			Expr:       "$obj.age >= %@",
			Args:       []any{int64(21)},
		},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(0)},
	}, Options{})

	assert.Equal(t, "name == %@ && SUBQUERY(friends, $obj, $obj.age >= %@).@count > %@", expr)
	assert.Equal(t, []any{"ana", int64(21), int64(0)}, args)
}

func TestCompile_InvalidSequenceFails(t *testing.T) {
	_, _, err := Compile(nil, Options{})
	require.Error(t, err)

	_, _, err = Compile([]token.Token{
		token.CollectionContains{Value: literal.String("x")},
	}, Options{})
	require.Error(t, err)
}

func TestCompile_Deterministic(t *testing.T) {
	tokens := []token.Token{
		token.KeyPath{Name: "age"},
		token.Comparison{Op: token.OpGreater},
		token.Operand{Value: literal.Int(21)},
		token.Compound{Op: token.OpAnd},
		token.KeyPath{Name: "name"},
		token.StringSearch{Kind: token.SearchContains, Pattern: "a", Options: token.SearchOptions{CaseInsensitive: true}},
	}

	first, firstArgs := compileOK(t, tokens, Options{})
	for i := 0; i < 5; i++ {
		expr, args := compileOK(t, tokens, Options{})
		assert.Equal(t, first, expr)
		assert.Equal(t, firstArgs, args)
	}
}

func TestCompile_PlaceholderCountMatchesArguments(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "age"},
		token.Range{Low: literal.Int(1), High: literal.Int(5), Inclusive: true},
		token.Compound{Op: token.OpAnd},
		token.KeyPath{Name: "name"},
		token.StringSearch{Kind: token.SearchLike, Pattern: "a*"},
	}, Options{})

	count := 0
	for i := 0; i+1 < len(expr); i++ {
		if expr[i] == '%' && expr[i+1] == '@' {
			count++
		}
	}
	assert.Equal(t, len(args), count)
}

func TestCompile_HalfOpenRangeOnAggregatedKeyPath(t *testing.T) {
	expr, args := compileOK(t, []token.Token{
		token.KeyPath{Name: "scores", Collection: true},
		token.Aggregation{Op: token.AggMin},
		token.Range{Low: literal.Int(1), High: literal.Int(10)},
	}, Options{})

	// Both bounds constrain the aggregate, never the bare collection.
	assert.Equal(t, "scores.@min >= %@ && scores.@min < %@", expr)
	assert.Equal(t, []any{int64(1), int64(10)}, args)
}
