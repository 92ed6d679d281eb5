package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// LineItemsSchemaVersion versión del documento JSON de líneas guardado con cada factura.
//
//	{"version":1,"items":[{"batch_id":"…","batch_code":"P50124-1","product_name":"…",
//	  "hsn_code":"3004","quantity":3,"unit_rate":"2.50","line_total":"7.50"}]}
const LineItemsSchemaVersion = 1

type lineItemsDoc struct {
	Version int               `json:"version"`
	Items   []entity.LineItem `json:"items"`
}

// EncodeLineItems serializa las líneas de una factura.
func EncodeLineItems(items []entity.LineItem) ([]byte, error) {
	if err := validateLineItems(items); err != nil {
		return nil, err
	}
	return json.Marshal(lineItemsDoc{Version: LineItemsSchemaVersion, Items: items})
}

// DecodeLineItems deserializa y valida las líneas guardadas. Cualquier desviación del
// esquema devuelve *domain.CorruptDataError.
func DecodeLineItems(data []byte) ([]entity.LineItem, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc lineItemsDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, corrupt(err)
	}
	if doc.Version != LineItemsSchemaVersion {
		return nil, corrupt(fmt.Errorf("versión %d no soportada", doc.Version))
	}
	if err := validateLineItems(doc.Items); err != nil {
		return nil, corrupt(err)
	}
	return doc.Items, nil
}

func corrupt(err error) error {
	return &domain.CorruptDataError{What: "line_items", Err: err}
}

func validateLineItems(items []entity.LineItem) error {
	if len(items) == 0 {
		return errors.New("la factura no tiene líneas")
	}
	for i, li := range items {
		switch {
		case li.BatchID == "":
			return fmt.Errorf("línea %d: batch_id vacío", i)
		case li.ProductName == "":
			return fmt.Errorf("línea %d: product_name vacío", i)
		case li.Quantity <= 0:
			return fmt.Errorf("línea %d: quantity debe ser positiva", i)
		case li.UnitRate.IsNegative():
			return fmt.Errorf("línea %d: unit_rate negativo", i)
		case !li.LineTotal.Equal(LineTotal(li.Quantity, li.UnitRate)):
			return fmt.Errorf("línea %d: line_total no coincide con quantity*unit_rate", i)
		}
	}
	return nil
}
