package domain

// Represents a single parcel waiting to be moved by the robot.
// Place is where the parcel currently lies (or is carried), Address is where
// it must end up. A parcel whose Place equals its Address is delivered.
type Parcel struct {
	Place   Location `json:"place" yaml:"place"`
	Address Location `json:"address" yaml:"address"`
}

// Delivered reports whether the parcel has reached its address.
func (p Parcel) Delivered() bool { return p.Place == p.Address }
