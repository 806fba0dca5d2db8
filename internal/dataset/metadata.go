package dataset

// PVMetadata describes the fixed mounting of a PV unit: tilt from
// horizontal and orientation from south (negative east, positive west).
type PVMetadata struct {
	Tilt        int
	Orientation int
}

// pvMetadata holds the mounting angles of the known CoSSMic PV units.
var pvMetadata = map[string]PVMetadata{
	"DE_KN_residential1_pv": {Tilt: 30, Orientation: -5},
	"DE_KN_residential3_pv": {Tilt: 5, Orientation: -160},
	"DE_KN_residential4_pv": {Tilt: 28, Orientation: 28},
	"DE_KN_residential6_pv": {Tilt: 40, Orientation: 30},
}

// PVMeta returns the mounting metadata for a PV unit. Unknown units get
// zero angles, matching the upstream metadata table.
func PVMeta(name string) PVMetadata {
	return pvMetadata[name]
}
