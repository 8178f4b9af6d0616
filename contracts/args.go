package contracts

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

// ArgConverter turns loosely typed values, as they come out of JSON or
// the command line, into the Go types the abi package packs. Addresses may
// be given as address book keys ("erc20.DAI") when a book is set.
type ArgConverter struct {
	book *addrbook.Book
}

func NewArgConverter(book *addrbook.Book) *ArgConverter {
	return &ArgConverter{book: book}
}

// DecodeJSONInputs parses a JSON array of inputs keeping numbers exact.
func DecodeJSONInputs(data string) ([]any, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return []any{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var inputs []any
	if err := dec.Decode(&inputs); err != nil {
		return nil, fmt.Errorf("inputs must be a JSON array: %w", err)
	}
	return inputs, nil
}

func (c *ArgConverter) ConvertArgs(args abi.Arguments, inputs []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("expected %d inputs, got %d", len(args), len(inputs))
	}
	result := make([]any, 0, len(args))
	for i, arg := range args {
		v, err := c.Convert(arg.Type, inputs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d (%s %s): %w", i, arg.Type, arg.Name, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func (c *ArgConverter) Convert(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.StringTy:
		return toString(v)
	case abi.IntTy:
		return toIntOrBig(v, t.Size, true)
	case abi.UintTy:
		return toIntOrBig(v, t.Size, false)
	case abi.BoolTy:
		return toBool(v)
	case abi.AddressTy:
		return c.toAddress(v)
	case abi.HashTy:
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(s, "0x") {
			return nil, fmt.Errorf("hash must begin with 0x")
		}
		return common.HexToHash(s), nil
	case abi.BytesTy, abi.FunctionTy:
		return toBytes(v)
	case abi.FixedBytesTy:
		return toFixedBytes(v, t)
	case abi.SliceTy, abi.ArrayTy:
		return c.toArray(v, t)
	case abi.TupleTy:
		return c.toTuple(v, t)
	default:
		return nil, fmt.Errorf("not supported type: %s", t)
	}
}

func toString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case fmt.Stringer:
		return val.String(), nil
	}
	return "", fmt.Errorf("expected a string, got %T", v)
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.TrimSpace(val) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf(`bool value must be true or false, got %v`, v)
}

func toBig(v any) (*big.Int, error) {
	switch val := v.(type) {
	case *big.Int:
		return new(big.Int).Set(val), nil
	case int:
		return big.NewInt(int64(val)), nil
	case int64:
		return big.NewInt(val), nil
	case uint64:
		return new(big.Int).SetUint64(val), nil
	case float64:
		if val != float64(int64(val)) {
			return nil, fmt.Errorf("%v is not an integer", val)
		}
		return big.NewInt(int64(val)), nil
	case json.Number:
		return toBig(val.String())
	case string:
		str := strings.TrimSpace(val)
		if str == "" {
			return nil, fmt.Errorf("invalid int format: empty string")
		}
		base := 10
		if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
			str, base = str[2:], 16
		}
		result, ok := new(big.Int).SetString(str, base)
		if !ok {
			return nil, fmt.Errorf("can't convert %s to big int", str)
		}
		return result, nil
	}
	return nil, fmt.Errorf("expected a number, got %T", v)
}

func toIntOrBig(v any, size int, signed bool) (any, error) {
	n, err := toBig(v)
	if err != nil {
		return nil, err
	}
	if signed {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%s overflows int%d", n, size)
		}
	} else {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("%s is negative, uint%d expected", n, size)
		}
		if n.BitLen() > size {
			return nil, fmt.Errorf("%s overflows uint%d", n, size)
		}
	}
	switch size {
	case 8, 16, 32, 64:
		if signed {
			return nativeInt(n.Int64(), size), nil
		}
		return nativeUint(n.Uint64(), size), nil
	default:
		return n, nil
	}
}

func nativeInt(n int64, size int) any {
	switch size {
	case 8:
		return int8(n)
	case 16:
		return int16(n)
	case 32:
		return int32(n)
	}
	return n
}

func nativeUint(n uint64, size int) any {
	switch size {
	case 8:
		return uint8(n)
	case 16:
		return uint16(n)
	case 32:
		return uint32(n)
	}
	return n
}

func (c *ArgConverter) toAddress(v any) (common.Address, error) {
	if addr, ok := v.(common.Address); ok {
		return addr, nil
	}
	s, err := toString(v)
	if err != nil {
		return common.Address{}, err
	}
	s = strings.TrimSpace(s)
	if common.IsHexAddress(s) {
		return common.HexToAddress(s), nil
	}
	if c.book != nil {
		if key, err := addrbook.ParseKey(s); err == nil {
			return c.book.LookupKey(key)
		}
	}
	return common.Address{}, fmt.Errorf("invalid address: %q", s)
}

func toBytes(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "0x" {
		return []byte{}, nil
	}
	return hexutil.Decode(s)
}

// toFixedBytes derives the [N]byte type from t so no per-size switch is
// needed.
func toFixedBytes(v any, t abi.Type) (any, error) {
	raw, err := toBytes(v)
	if err != nil {
		return nil, err
	}
	if len(raw) > t.Size {
		return nil, fmt.Errorf("%d bytes don't fit in bytes%d", len(raw), t.Size)
	}
	arr := reflect.New(t.GetType()).Elem()
	reflect.Copy(arr, reflect.ValueOf(raw))
	return arr.Interface(), nil
}

// elements accepts a decoded JSON array or a string holding one.
func elements(v any) ([]any, error) {
	switch val := v.(type) {
	case []any:
		return val, nil
	case string:
		return DecodeJSONInputs(val)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		result := make([]any, rv.Len())
		for i := range result {
			result[i] = rv.Index(i).Interface()
		}
		return result, nil
	}
	return nil, fmt.Errorf("expected an array, got %T", v)
}

func (c *ArgConverter) toArray(v any, t abi.Type) (any, error) {
	elems, err := elements(v)
	if err != nil {
		return nil, err
	}
	if t.T == abi.ArrayTy && len(elems) != t.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(elems))
	}

	var result reflect.Value
	if t.T == abi.ArrayTy {
		result = reflect.New(t.GetType()).Elem()
	} else {
		result = reflect.MakeSlice(t.GetType(), 0, len(elems))
	}
	for i, elem := range elems {
		value, err := c.Convert(*t.Elem, elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if t.T == abi.ArrayTy {
			result.Index(i).Set(reflect.ValueOf(value))
		} else {
			result = reflect.Append(result, reflect.ValueOf(value))
		}
	}
	return result.Interface(), nil
}

// toTuple takes either an object keyed by component name or a positional
// array.
func (c *ArgConverter) toTuple(v any, t abi.Type) (any, error) {
	var fields []any
	switch val := v.(type) {
	case map[string]any:
		fields = make([]any, len(t.TupleRawNames))
		for i, name := range t.TupleRawNames {
			field, found := val[name]
			if !found {
				return nil, fmt.Errorf("missing tuple field %q", name)
			}
			fields[i] = field
		}
	case string:
		trimmed := strings.TrimSpace(val)
		if strings.HasPrefix(trimmed, "{") {
			dec := json.NewDecoder(strings.NewReader(trimmed))
			dec.UseNumber()
			var obj map[string]any
			if err := dec.Decode(&obj); err != nil {
				return nil, err
			}
			return c.toTuple(obj, t)
		}
		elems, err := DecodeJSONInputs(trimmed)
		if err != nil {
			return nil, err
		}
		fields = elems
	default:
		elems, err := elements(v)
		if err != nil {
			return nil, err
		}
		fields = elems
	}
	if len(fields) != len(t.TupleElems) {
		return nil, fmt.Errorf("tuple expects %d fields, got %d", len(t.TupleElems), len(fields))
	}

	tuple := reflect.New(t.TupleType).Elem()
	for i := range t.TupleElems {
		value, err := c.Convert(*t.TupleElems[i], fields[i])
		if err != nil {
			return nil, fmt.Errorf("tuple field %s: %w", t.TupleRawNames[i], err)
		}
		tuple.Field(i).Set(reflect.ValueOf(value))
	}
	return tuple.Interface(), nil
}

// FormatValue renders a decoded abi value for display.
func FormatValue(t abi.Type, value any) string {
	if h, ok := value.(common.Hash); ok {
		return h.Hex()
	}
	switch t.T {
	case abi.StringTy:
		return fmt.Sprintf("%s", value)
	case abi.IntTy, abi.UintTy:
		return fmt.Sprintf("%d", value)
	case abi.BoolTy:
		return fmt.Sprintf("%t", value)
	case abi.AddressTy:
		if addr, ok := value.(common.Address); ok {
			return addr.Hex()
		}
	case abi.HashTy:
		if h, ok := value.(common.Hash); ok {
			return h.Hex()
		}
	case abi.BytesTy, abi.FunctionTy:
		if b, ok := value.([]byte); ok {
			return hexutil.Encode(b)
		}
	case abi.FixedBytesTy:
		rv := reflect.ValueOf(value)
		word := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(word), rv)
		return hexutil.Encode(word)
	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(value)
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(*t.Elem, rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case abi.TupleTy:
		rv := reflect.Indirect(reflect.ValueOf(value))
		parts := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			parts[i] = t.TupleRawNames[i] + ": " + FormatValue(*elem, rv.Field(i).Interface())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", value)
}
