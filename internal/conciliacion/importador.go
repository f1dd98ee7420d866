package conciliacion

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// MovimientoBancario is one statement line parsed from a bank CSV export.
type MovimientoBancario struct {
	Fecha                  time.Time
	Descripcion            string
	DescripcionNormalizada string
	Monto                  decimal.Decimal
	Referencia             string
}

// ResultadoImportacion reports how many statement lines parsed and how many
// were skipped as malformed.
type ResultadoImportacion struct {
	Movimientos []MovimientoBancario
	Omitidas    int
}

// LeerEstadoCuenta parses a semicolon-delimited bank statement export.
// Bank exports arrive Windows-1252 encoded, so the stream is decoded before
// parsing. Expected columns: fecha, descripcion, monto and optionally
// referencia. Rows with an unparseable date or amount are skipped and
// counted, never fatal.
func LeerEstadoCuenta(r io.Reader) (ResultadoImportacion, error) {
	decoded := charmap.Windows1252.NewDecoder().Reader(r)
	df := dataframe.ReadCSV(decoded, dataframe.WithDelimiter(';'), dataframe.WithLazyQuotes(true))
	if df.Error() != nil {
		return ResultadoImportacion{}, fmt.Errorf("no se pudo leer el estado de cuenta: %w", df.Error())
	}
	if df.Nrow() == 0 {
		return ResultadoImportacion{Movimientos: []MovimientoBancario{}}, nil
	}

	resultado := ResultadoImportacion{Movimientos: make([]MovimientoBancario, 0, df.Nrow())}
	for i := 0; i < df.Nrow(); i++ {
		fecha, okFecha := ParseFecha(getStr(&df, i, "fecha", "Fecha"))
		monto, okMonto := ParseMonto(getStr(&df, i, "monto", "Monto", "importe", "Importe"))
		if !okFecha || !okMonto {
			resultado.Omitidas++
			continue
		}

		descripcion := getStr(&df, i, "descripcion", "Descripcion", "concepto", "Concepto")
		resultado.Movimientos = append(resultado.Movimientos, MovimientoBancario{
			Fecha:                  fecha,
			Descripcion:            descripcion,
			DescripcionNormalizada: NormalizarDescripcion(descripcion),
			Monto:                  monto,
			Referencia:             getStr(&df, i, "referencia", "Referencia"),
		})
	}

	return resultado, nil
}

// ParseFecha accepts the dd/mm/yyyy format used by bank exports, falling
// back to ISO yyyy-mm-dd.
func ParseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseMonto parses an amount that may carry a currency sign and thousands
// separators. When both ',' and '.' appear, the one further right is the
// decimal separator.
func ParseMonto(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Decimal{}, false
	}

	coma := strings.LastIndex(s, ",")
	punto := strings.LastIndex(s, ".")
	if coma > punto {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	monto, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return monto, true
}

func getStr(df *dataframe.DataFrame, rowIdx int, cols ...string) string {
	nombres := df.Names()
	for _, col := range cols {
		for _, n := range nombres {
			if n == col {
				return df.Col(col).Elem(rowIdx).String()
			}
		}
	}
	return ""
}
