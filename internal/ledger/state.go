package ledger

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// AddressLength is the length in characters of every valid state address.
	AddressLength = 70
	// NamespaceLength is the length of the address prefix naming a transaction family.
	NamespaceLength = 6
	// SettingsNamespace is reserved for blockchain settings written by genesis.
	SettingsNamespace = "000000"
)

// ErrInvalidAddressLength is matched by every AddressLengthError.
var ErrInvalidAddressLength = errors.New("invalid address length")

// AddressLengthError reports a state address that is not AddressLength long.
type AddressLengthError struct {
	Address string
}

func (e *AddressLengthError) Error() string {
	return fmt.Sprintf("invalid address %q: length %d, expected %d", e.Address, utf8.RuneCountInString(e.Address), AddressLength)
}

func (e *AddressLengthError) Unwrap() error { return ErrInvalidAddressLength }

// StateData is the root document of the /state endpoint.
type StateData struct {
	Data   []State `json:"data"`
	Head   string  `json:"head"`
	Link   string  `json:"link"`
	Paging Paging  `json:"paging"`
}

// NumStates returns the number of addresses that hold state.
func (d *StateData) NumStates() int { return len(d.Data) }

// State is the base64 data stored at one address.
type State struct {
	Address string `json:"address"`
	Data    string `json:"data"`
}

// Namespace returns the first NamespaceLength characters of the address.
func (s *State) Namespace() (string, error) {
	r := []rune(s.Address)
	if len(r) != AddressLength {
		return "", &AddressLengthError{Address: s.Address}
	}
	return string(r[:NamespaceLength]), nil
}

// IsSettings reports whether the address belongs to the settings namespace.
func (s *State) IsSettings() (bool, error) {
	ns, err := s.Namespace()
	if err != nil {
		return false, err
	}
	return ns == SettingsNamespace, nil
}
