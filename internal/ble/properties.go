package ble

// GATT characteristic property bits as sent in the characteristic declaration.
const (
	PropBroadcast uint32 = 1 << iota
	PropRead
	PropWriteWithoutResponse
	PropWrite
	PropNotify
	PropIndicate
	PropAuthenticatedSignedWrites
	PropExtendedProperties
)

var propertyTable = []struct {
	bit  uint32
	name string
}{
	{PropBroadcast, "broadcast"},
	{PropRead, "read"},
	{PropWriteWithoutResponse, "write-without-response"},
	{PropWrite, "write"},
	{PropNotify, "notify"},
	{PropIndicate, "indicate"},
	{PropAuthenticatedSignedWrites, "authenticated-signed-writes"},
	{PropExtendedProperties, "extended-properties"},
}

// PropertyNames lists the names of the property bits set in bits, in bit
// order. Bits above the declaration byte are ignored. The result is never
// nil, so CharacteristicInfo.Writable treats it as known.
func PropertyNames(bits uint32) []string {
	names := []string{}
	for _, p := range propertyTable {
		if bits&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	return names
}

// NotWritableError reports a characteristic that exists but advertises no
// write property.
func NotWritableError(service, characteristic string) error {
	return CharacteristicNotFoundError(service, characteristic, errNotWritable)
}
