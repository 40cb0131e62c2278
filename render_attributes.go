// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import "strings"

// parameterRows renders parameters table rows in input order.
func parameterRows(parameters []Parameter) []parameterView {
	if len(parameters) == 0 {
		return nil
	}

	out := make([]parameterView, 0, len(parameters))
	for _, parameter := range parameters {
		out = append(out, parameterView{
			Name:        escapeTableCell(parameter.Name),
			Type:        escapeTableCell(parameter.Type),
			In:          escapeTableCell(parameter.In),
			Required:    yesNo(parameter.Required),
			Description: escapeTableCell(parameter.Description),
		})
	}

	return out
}

// escapeTableCell squashes whitespace and escapes pipes in one table cell.
func escapeTableCell(value string) string {
	return strings.ReplaceAll(sanitizeText(value), "|", `\|`)
}

// yesNo renders bool as "yes" or "no".
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
