package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/application/sales"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

var testToday = time.Date(2025, time.March, 10, 0, 0, 0, 0, testLoc)

// validInput input mínimo válido para una venta de retiro por el local.
func validInput() dto.SaleInput {
	return dto.SaleInput{
		CustomerID:    ptr(int64(1)),
		Amount:        ptr(decimal.NewFromInt(15000)),
		PaymentMethod: ptr("transferencia"),
		DeliveryType:  ptr("retiro"),
		SalesChannel:  ptr("instagram"),
	}
}

func TestValidateAndNormalize_CreacionMinimaValida(t *testing.T) {
	sale, err := sales.ValidateAndNormalize(validInput(), nil, testToday, testLoc)
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryRetiro, sale.DeliveryType)
	assert.False(t, sale.HasShipping, "solo cadetería lleva envío")
	assert.Nil(t, sale.ShippingDate)
	assert.False(t, sale.Paid, "booleanos ausentes quedan en false")
	assert.False(t, sale.IsCash)
	assert.False(t, sale.HasChange)
	assert.Equal(t, testToday, sale.SaleDate, "sale_date ausente toma hoy")
}

func TestValidateAndNormalize_DeliveryTypeObligatorioAlCrear(t *testing.T) {
	in := validInput()
	in.DeliveryType = nil
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_DeliveryTypeInvalido(t *testing.T) {
	in := validInput()
	in.DeliveryType = ptr("drone")
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_CadeteriaDerivaHasShipping(t *testing.T) {
	in := validInput()
	in.DeliveryType = ptr("cadeteria")
	in.ShippingDate = ptr("2025-03-12")

	sale, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	require.NoError(t, err)
	assert.True(t, sale.HasShipping)
	require.NotNil(t, sale.ShippingDate)
	assert.Equal(t, "2025-03-12", sale.ShippingDate.Format("2006-01-02"))
}

func TestValidateAndNormalize_CadeteriaSinFechaFalla(t *testing.T) {
	in := validInput()
	in.DeliveryType = ptr("cadeteria")
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_FechaDeEnvioPasadaFalla(t *testing.T) {
	in := validInput()
	in.DeliveryType = ptr("cadeteria")
	in.ShippingDate = ptr("2025-03-09") // ayer
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_FechaDeEnvioHoyEsValida(t *testing.T) {
	in := validInput()
	in.DeliveryType = ptr("cadeteria")
	in.ShippingDate = ptr("2025-03-10")
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.NoError(t, err)
}

func TestValidateAndNormalize_RetiroDescartaFechaDeEnvio(t *testing.T) {
	in := validInput()
	in.ShippingDate = ptr("2025-03-12")
	sale, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	require.NoError(t, err)
	assert.Nil(t, sale.ShippingDate, "retiro nunca lleva fecha de envío")
}

func TestValidateAndNormalize_EfectivoYPagadaSonExcluyentes(t *testing.T) {
	in := validInput()
	in.IsCash = ptr(true)
	in.Paid = ptr(true)
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_MontoNoPositivoFalla(t *testing.T) {
	in := validInput()
	in.Amount = ptr(decimal.Zero)
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Amount = ptr(decimal.NewFromInt(-100))
	_, err = sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_MetodoDePagoInvalido(t *testing.T) {
	in := validInput()
	in.PaymentMethod = ptr("cheque")
	_, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateAndNormalize_ActualizacionParcialConservaCampos(t *testing.T) {
	existing := &entity.Sale{
		ID:            7,
		CustomerID:    1,
		Amount:        decimal.NewFromInt(15000),
		PaymentMethod: "transferencia",
		DeliveryType:  entity.DeliveryRetiro,
		SalesChannel:  "instagram",
		SaleDate:      testToday.AddDate(0, 0, -3),
	}

	sale, err := sales.ValidateAndNormalize(dto.SaleInput{
		Amount: ptr(decimal.NewFromInt(18000)),
	}, existing, testToday, testLoc)
	require.NoError(t, err)

	assert.True(t, sale.Amount.Equal(decimal.NewFromInt(18000)))
	assert.Equal(t, "instagram", sale.SalesChannel, "los campos no enviados no cambian")
	assert.Equal(t, entity.DeliveryRetiro, sale.DeliveryType)
	assert.Equal(t, existing.SaleDate, sale.SaleDate)
}

func TestValidateAndNormalize_CambioATipoSinEnvioLimpiaFecha(t *testing.T) {
	shippingDate := testToday.AddDate(0, 0, 2)
	existing := &entity.Sale{
		ID:            7,
		CustomerID:    1,
		Amount:        decimal.NewFromInt(15000),
		PaymentMethod: "transferencia",
		DeliveryType:  entity.DeliveryCadeteria,
		HasShipping:   true,
		ShippingDate:  &shippingDate,
		SalesChannel:  "instagram",
		SaleDate:      testToday,
	}

	sale, err := sales.ValidateAndNormalize(dto.SaleInput{
		DeliveryType: ptr("correo"),
	}, existing, testToday, testLoc)
	require.NoError(t, err)

	assert.False(t, sale.HasShipping)
	assert.Nil(t, sale.ShippingDate)
}

func TestValidateAndNormalize_FechaGuardadaDeHoyNoEsRetroactiva(t *testing.T) {
	// Una columna DATE llega escaneada como medianoche UTC. Para hoy eso es
	// un instante anterior a la medianoche de Buenos Aires: la venta sigue
	// siendo editable (notas, monto) sin reenviar la fecha.
	storedToday := time.Date(testToday.Year(), testToday.Month(), testToday.Day(), 0, 0, 0, 0, time.UTC)
	existing := &entity.Sale{
		ID:            7,
		CustomerID:    1,
		Amount:        decimal.NewFromInt(15000),
		PaymentMethod: "transferencia",
		DeliveryType:  entity.DeliveryCadeteria,
		HasShipping:   true,
		ShippingDate:  &storedToday,
		SalesChannel:  "instagram",
		SaleDate:      testToday,
	}

	sale, err := sales.ValidateAndNormalize(dto.SaleInput{
		Notes: ptr("dejar en portería"),
	}, existing, testToday, testLoc)
	require.NoError(t, err)

	require.NotNil(t, sale.ShippingDate)
	assert.Equal(t, "2025-03-10", sale.ShippingDate.Format("2006-01-02"))
	assert.Equal(t, testLoc, sale.ShippingDate.Location(), "la fecha queda reanclada a la zona del negocio")
	assert.Equal(t, "dejar en portería", sale.Notes)
}

func TestValidateAndNormalize_RedondeaMontoADosDecimales(t *testing.T) {
	in := validInput()
	in.Amount = ptr(decimal.RequireFromString("1234.567"))
	sale, err := sales.ValidateAndNormalize(in, nil, testToday, testLoc)
	require.NoError(t, err)
	assert.True(t, sale.Amount.Equal(decimal.RequireFromString("1234.57")))
}
