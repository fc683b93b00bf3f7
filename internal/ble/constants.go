package ble

const (
	// DefaultServiceUUID is the wake service advertised by the Penta power button (0x00FF)
	DefaultServiceUUID = "000000ff-0000-1000-8000-00805f9b34fb"

	// DefaultCharacteristicUUID is the writable wake characteristic (0xFF01)
	DefaultCharacteristicUUID = "0000ff01-0000-1000-8000-00805f9b34fb"

	// UserDescriptionUUID is the Characteristic User Description descriptor (0x2901)
	UserDescriptionUUID = "00002901-0000-1000-8000-00805f9b34fb"

	// DefaultLocalName is the name the firmware advertises under
	DefaultLocalName = "Penta Power Btn"

	// DefaultPayload is the byte the firmware treats as a wake trigger
	DefaultPayload byte = 0x01
)
