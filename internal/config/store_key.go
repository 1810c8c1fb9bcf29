package config

// StoreKeyStruct centralizes every Redis key and channel name the portal
// uses, so the shared-store schema lives in one place.
type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// LiveSession returns the single key holding the current live session record.
func (k *StoreKeyStruct) LiveSession() string {
	return "live:session"
}

// LiveEventsChannel returns the pub/sub channel carrying live session events
// (started, stopped, player joined, player finished) to dashboard watchers.
func (k *StoreKeyStruct) LiveEventsChannel() string {
	return "live:events"
}

var StoreKey = NewStoreKeyStruct()
