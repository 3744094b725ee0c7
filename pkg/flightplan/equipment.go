package flightplan

// EquipmentCode is the FAA aircraft equipment suffix (the "/L" in "B738/L").
type EquipmentCode int

const (
	EquipmentUnknown EquipmentCode = iota
	EquipmentT
	EquipmentX
	EquipmentU
	EquipmentD
	EquipmentB
	EquipmentA
	EquipmentM
	EquipmentN
	EquipmentP
	EquipmentY
	EquipmentC
	EquipmentI
	EquipmentE
	EquipmentF
	EquipmentG
	EquipmentR
	EquipmentW
	EquipmentQ
)

var equipmentCodes = newLetterCodes(map[EquipmentCode]string{
	EquipmentT: "T",
	EquipmentX: "X",
	EquipmentU: "U",
	EquipmentD: "D",
	EquipmentB: "B",
	EquipmentA: "A",
	EquipmentM: "M",
	EquipmentN: "N",
	EquipmentP: "P",
	EquipmentY: "Y",
	EquipmentC: "C",
	EquipmentI: "I",
	EquipmentE: "E",
	EquipmentF: "F",
	EquipmentG: "G",
	EquipmentR: "R",
	EquipmentW: "W",
	EquipmentQ: "Q",
})

// rnavCapable lists the suffixes that declare area navigation: Y C I
// (RNAV without or with transponder variants), E F G R (FMS/GNSS/RNP) and
// Q (RNAV with RVSM). X T U D B A M N P W declare no RNAV.
var rnavCapable = map[EquipmentCode]bool{
	EquipmentY: true,
	EquipmentC: true,
	EquipmentI: true,
	EquipmentE: true,
	EquipmentF: true,
	EquipmentG: true,
	EquipmentR: true,
	EquipmentQ: true,
}

// ParseEquipmentCode decodes an equipment suffix; unknown letters yield EquipmentUnknown.
func ParseEquipmentCode(letter string) EquipmentCode {
	v, _ := equipmentCodes.lookup(letter)
	return v
}

func (c EquipmentCode) String() string { return equipmentCodes.code(c) }

// IsRNAV reports whether the suffix declares RNAV capability.
func (c EquipmentCode) IsRNAV() bool { return rnavCapable[c] }

func (c EquipmentCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *EquipmentCode) UnmarshalText(b []byte) error {
	*c = ParseEquipmentCode(string(b))
	return nil
}
