// Package person normaliza los datos de personas tal como llegan de la base:
// la columna de roles (JSON, CSV, etiqueta suelta o buffer) y el nombre completo.
// Son funciones puras, seguras para uso concurrente.
package person

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RoleFormat convención de almacenamiento de la columna roles.
type RoleFormat string

const (
	RoleFormatJSON RoleFormat = "json" // ["Cutter","Designer"]
	RoleFormatCSV  RoleFormat = "csv"  // Cutter,Designer
)

// RoleAdmin es el rol que habilita el acceso de un empleado al panel de administración.
const RoleAdmin = "admin"

// DecodeRoles convierte el valor crudo de la columna roles en una lista ordenada de etiquetas.
//
// Acepta lo que entregue el driver: nil, []string, []any (jsonb ya decodificado),
// []byte, string o *string. Nunca falla: cualquier valor irreconocible produce
// una lista vacía. Los duplicados se conservan.
func DecodeRoles(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanRoles(v)
	case []any:
		return cleanAnyRoles(v)
	case []byte:
		return decodeRolesText(string(v))
	case string:
		return decodeRolesText(v)
	case *string:
		if v == nil {
			return []string{}
		}
		return decodeRolesText(*v)
	case map[string]any:
		if list, ok := v["roles"].([]any); ok {
			return cleanAnyRoles(list)
		}
		return []string{}
	default:
		return []string{}
	}
}

func decodeRolesText(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		if roles, ok := decodeRolesJSON(s); ok {
			return roles
		}
	}
	if strings.Contains(s, ",") {
		return cleanRoles(strings.Split(s, ","))
	}
	return []string{s}
}

// decodeRolesJSON devuelve ok=false cuando el texto no es JSON o no contiene una lista,
// para que el llamador continúe con el tratamiento CSV / etiqueta suelta.
func decodeRolesJSON(s string) ([]string, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil, false
	}
	switch v := parsed.(type) {
	case []any:
		return cleanAnyRoles(v), true
	case map[string]any:
		if list, ok := v["roles"].([]any); ok {
			return cleanAnyRoles(list), true
		}
	}
	return nil, false
}

func cleanRoles(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// cleanAnyRoles conserva los escalares (números, booleanos) como texto; null y
// valores anidados se descartan.
func cleanAnyRoles(in []any) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		case float64, int, int64, bool, json.Number:
			s = fmt.Sprint(v)
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EncodeRoles serializa la lista para la columna roles según el formato de la tabla.
// Con RoleFormatCSV una etiqueta que contenga comas no sobrevive la ida y vuelta.
func EncodeRoles(roles []string, format RoleFormat) string {
	if format == RoleFormatCSV {
		return strings.Join(roles, ",")
	}
	if roles == nil {
		roles = []string{}
	}
	b, err := json.Marshal(roles)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ContainsRole indica si la lista contiene exactamente el rol. Es la regla del acceso al panel.
func ContainsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasRole indica si la lista contiene el rol (comparación sin distinguir mayúsculas).
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
