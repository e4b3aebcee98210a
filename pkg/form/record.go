package form

import (
	"encoding/json"
	"errors"
	"strings"
)

// DefaultAuthorization is the payroll-deduction statement pre-filled in every new form.
const DefaultAuthorization = "Autorizo se me descuente mensualmente el 0,5 % de mi sueldo básico con destino al Sindicato de Empleados del Servicio Geológico Colombiano - SINDEGEOLÓGICO, por concepto de cuotas mensuales ordinarias."

// Field names as they appear in the persisted snapshot and the relay payload.
const (
	FieldNombres           = "nombres"
	FieldApellidos         = "apellidos"
	FieldFechaIngreso      = "fecha_ingreso"
	FieldDependencia       = "dependencia"
	FieldCiudad            = "ciudad"
	FieldTelefono          = "telefono"
	FieldExtension         = "extension"
	FieldCorreo            = "correo"
	FieldFirma1            = "firma_1_image"
	FieldCC1               = "cc_1"
	FieldDe1               = "de_1"
	FieldYo                = "yo"
	FieldCCIdentificado    = "cc_identificado"
	FieldDe2               = "de_2"
	FieldAutorizacionTexto = "autorizacion_texto"
	FieldFirma2            = "firma_2_image"
	FieldCC2               = "cc_2"
	FieldDe3               = "de_3"
	FieldCiudadFecha       = "ciudad_fecha"
)

// Record holds every value of one affiliation form.
type Record struct {
	Nombres           string `json:"nombres"`
	Apellidos         string `json:"apellidos"`
	FechaIngreso      string `json:"fecha_ingreso"`
	Dependencia       string `json:"dependencia"`
	Ciudad            string `json:"ciudad"`
	Telefono          string `json:"telefono"`
	Extension         string `json:"extension"`
	Correo            string `json:"correo"`
	Firma1Image       string `json:"firma_1_image"`
	CC1               string `json:"cc_1"`
	De1               string `json:"de_1"`
	Yo                string `json:"yo"`
	CCIdentificado    string `json:"cc_identificado"`
	De2               string `json:"de_2"`
	AutorizacionTexto string `json:"autorizacion_texto"`
	Firma2Image       string `json:"firma_2_image"`
	CC2               string `json:"cc_2"`
	De3               string `json:"de_3"`
	CiudadFecha       string `json:"ciudad_fecha"`
}

// Defaults returns a blank record with the default authorization statement.
func Defaults() Record {
	return Record{AutorizacionTexto: DefaultAuthorization}
}

// FullName returns nombres and apellidos joined by a space, trimmed.
func (r Record) FullName() string {
	return strings.TrimSpace(r.Nombres + " " + r.Apellidos)
}

// Derived holds the values of the read-only fields mirrored from identity fields.
type Derived struct {
	Yo             string
	CCIdentificado string
	De2            string
	CC2            string
	De3            string
}

// Derive computes the mirrored fields from nombres, apellidos, cc_1 and de_1.
func Derive(r Record) Derived {
	return Derived{
		Yo:             r.FullName(),
		CCIdentificado: r.CC1,
		De2:            r.De1,
		CC2:            r.CC1,
		De3:            r.De1,
	}
}

// Apply returns a copy of r with the derived values written into it.
func (d Derived) Apply(r Record) Record {
	r.Yo = d.Yo
	r.CCIdentificado = d.CCIdentificado
	r.De2 = d.De2
	r.CC2 = d.CC2
	r.De3 = d.De3
	return r
}

// Synced reports whether the derived fields of r already match its identity fields.
func Synced(r Record) bool {
	return Derive(r).Apply(r) == r
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (string, error) {
	p := r.field(name)
	if p == nil {
		return "", ErrUnknownField
	}
	return *p, nil
}

// Set assigns the named field without any derived-field bookkeeping.
func (r *Record) Set(name, value string) error {
	p := r.field(name)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	return nil
}

func (r *Record) field(name string) *string {
	switch name {
	case FieldNombres:
		return &r.Nombres
	case FieldApellidos:
		return &r.Apellidos
	case FieldFechaIngreso:
		return &r.FechaIngreso
	case FieldDependencia:
		return &r.Dependencia
	case FieldCiudad:
		return &r.Ciudad
	case FieldTelefono:
		return &r.Telefono
	case FieldExtension:
		return &r.Extension
	case FieldCorreo:
		return &r.Correo
	case FieldFirma1:
		return &r.Firma1Image
	case FieldCC1:
		return &r.CC1
	case FieldDe1:
		return &r.De1
	case FieldYo:
		return &r.Yo
	case FieldCCIdentificado:
		return &r.CCIdentificado
	case FieldDe2:
		return &r.De2
	case FieldAutorizacionTexto:
		return &r.AutorizacionTexto
	case FieldFirma2:
		return &r.Firma2Image
	case FieldCC2:
		return &r.CC2
	case FieldDe3:
		return &r.De3
	case FieldCiudadFecha:
		return &r.CiudadFecha
	}
	return nil
}

// IsDerived reports whether the field is recomputed from identity fields.
func IsDerived(name string) bool {
	switch name {
	case FieldYo, FieldCCIdentificado, FieldDe2, FieldCC2, FieldDe3:
		return true
	}
	return false
}

// IsSignature reports whether the field holds signature image data.
func IsSignature(name string) bool {
	return name == FieldFirma1 || name == FieldFirma2
}

// IsDependency reports whether changing the field affects derived values.
func IsDependency(name string) bool {
	switch name {
	case FieldNombres, FieldApellidos, FieldCC1, FieldDe1:
		return true
	}
	return false
}

// Decode parses a persisted snapshot and merges it over the defaults,
// so keys missing from older snapshots keep their default value.
func Decode(data []byte) (Record, error) {
	r := Defaults()
	if err := json.Unmarshal(data, &r); err != nil {
		return Defaults(), errors.Join(ErrCorruptSnapshot, err)
	}
	return r, nil
}

// Encode serializes the record for persistence.
func Encode(r Record) ([]byte, error) {
	return json.Marshal(r)
}
