package codegen

// primInfo describes how one IDL primitive type maps onto the Go type
// and the binary/text codec calls that read and write it.
type primInfo struct {
	goType     string
	binWrite   string
	binRead    string
	textDecode string
	textEncode string
	textCast   string // Go type to cast the value to before the text encode call, if any
}

var primitives = map[string]primInfo{
	"char":   {goType: "byte", binWrite: "WriteChar", binRead: "ReadChar", textDecode: "DecodeChar", textEncode: "EncodeChar"},
	"bool":   {goType: "bool", binWrite: "WriteBool", binRead: "ReadBool", textDecode: "DecodeBool", textEncode: "EncodeBool"},
	"int8":   {goType: "int8", binWrite: "WriteInt8", binRead: "ReadInt8", textDecode: "DecodeInt8", textEncode: "EncodeInt64", textCast: "int64"},
	"int16":  {goType: "int16", binWrite: "WriteInt16", binRead: "ReadInt16", textDecode: "DecodeInt16", textEncode: "EncodeInt64", textCast: "int64"},
	"int32":  {goType: "int32", binWrite: "WriteInt32", binRead: "ReadInt32", textDecode: "DecodeInt32", textEncode: "EncodeInt64", textCast: "int64"},
	"int64":  {goType: "int64", binWrite: "WriteInt64", binRead: "ReadInt64", textDecode: "DecodeInt64", textEncode: "EncodeInt64"},
	"uint8":  {goType: "uint8", binWrite: "WriteUint8", binRead: "ReadUint8", textDecode: "DecodeUint8", textEncode: "EncodeUint64", textCast: "uint64"},
	"uint16": {goType: "uint16", binWrite: "WriteUint16", binRead: "ReadUint16", textDecode: "DecodeUint16", textEncode: "EncodeUint64", textCast: "uint64"},
	"uint32": {goType: "uint32", binWrite: "WriteUint32", binRead: "ReadUint32", textDecode: "DecodeUint32", textEncode: "EncodeUint64", textCast: "uint64"},
	"uint64": {goType: "uint64", binWrite: "WriteUint64", binRead: "ReadUint64", textDecode: "DecodeUint64", textEncode: "EncodeUint64"},
	"float":  {goType: "float32", binWrite: "WriteFloat32", binRead: "ReadFloat32", textDecode: "DecodeFloat32", textEncode: "EncodeFloat32"},
	"double": {goType: "float64", binWrite: "WriteFloat64", binRead: "ReadFloat64", textDecode: "DecodeFloat64", textEncode: "EncodeFloat64"},
	"string": {goType: "string", binWrite: "WriteString", binRead: "ReadString", textDecode: "DecodeString", textEncode: "EncodeString"},
}
