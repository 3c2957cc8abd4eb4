// Package ocr implementa el colaborador externo de extracción de texto para
// facturas de servicios públicos. El worker HTTP se inicializa de forma
// perezosa en el primer documento y se libera con Shutdown explícito; no hay
// estado global de paquete.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	appbilling "github.com/tu-usuario/rentas-pro/internal/application/billing"
	"github.com/tu-usuario/rentas-pro/pkg/config"
	"github.com/tu-usuario/rentas-pro/pkg/logger"
)

// Verificar en tiempo de compilación que HTTPExtractor implementa BillExtractor.
var _ appbilling.BillExtractor = (*HTTPExtractor)(nil)

// HTTPExtractor adaptador que implementa BillExtractor contra un servicio
// REST de OCR. Usa net/http de la librería estándar; no requiere SDK.
type HTTPExtractor struct {
	endpoint string
	timeout  time.Duration
	log      *logger.Logger

	initOnce sync.Once
	client   *http.Client

	mu       sync.Mutex
	shutdown bool
}

// NewHTTPExtractor construye el adaptador. Si el endpoint está vacío las
// llamadas devuelven error descriptivo en lugar de panic.
func NewHTTPExtractor(cfg config.OCRConfig, log *logger.Logger) *HTTPExtractor {
	return &HTTPExtractor{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		log:      log,
	}
}

// ── Estructuras del protocolo del servicio OCR ────────────────────────────────

type extractRequest struct {
	Document string `json:"document"` // PDF en base64
	Kind     string `json:"kind"`     // utility_bill
}

type extractResponse struct {
	Amount     string  `json:"amount"`
	Reference  string  `json:"reference"`
	Period     string  `json:"period"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractBill envía el PDF al servicio y devuelve el cargo propuesto.
func (s *HTTPExtractor) ExtractBill(ctx context.Context, pdf []byte) (*appbilling.ExtractedBill, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("ocr: OCR_ENDPOINT no configurado")
	}
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return nil, fmt.Errorf("ocr: extractor cerrado")
	}
	s.mu.Unlock()

	// El cliente HTTP se crea una sola vez, en el primer documento.
	s.initOnce.Do(func() {
		s.client = &http.Client{Timeout: s.timeout}
		s.log.Debug().Str("endpoint", s.endpoint).Msg("cliente OCR inicializado")
	})

	payload := extractRequest{
		Document: base64.StdEncoding.EncodeToString(pdf),
		Kind:     "utility_bill",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ocr: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ocr: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr: llamada al servicio: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ocr: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr: servicio respondió %d: %s", resp.StatusCode, string(raw))
	}

	var out extractResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("ocr: parsear respuesta: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ocr: extracción fallida: %s", out.Error)
	}
	amount, err := decimal.NewFromString(out.Amount)
	if err != nil {
		return nil, fmt.Errorf("ocr: monto %q inválido: %w", out.Amount, err)
	}

	return &appbilling.ExtractedBill{
		Amount:     amount,
		Reference:  out.Reference,
		Period:     out.Period,
		Confidence: out.Confidence,
	}, nil
}

// Shutdown libera las conexiones del cliente. Llamadas posteriores a
// ExtractBill fallan; Shutdown es idempotente.
func (s *HTTPExtractor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return
	}
	s.shutdown = true
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
	s.log.Debug().Msg("cliente OCR cerrado")
}
