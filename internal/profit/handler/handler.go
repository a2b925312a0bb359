package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"profit-service/internal/config"
	"profit-service/internal/fileio"
	"profit-service/internal/middleware"
	"profit-service/internal/profit/model"
	profitSvc "profit-service/internal/profit/service"
)

// Process returns the upload handler:
// r.Post("/process", profitHnd.Process(cfg, logger, engine)).
func Process(cfg config.Config, logger zerolog.Logger, engine *profitSvc.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			status := http.StatusBadRequest
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				status = http.StatusRequestEntityTooLarge
			}
			writeError(w, status, "formulário inválido: "+err.Error())
			return
		}

		format, ok := fileio.ParseFormat(r.FormValue("format"))
		if !ok {
			writeError(w, http.StatusBadRequest, "formato de saída desconhecido: "+r.FormValue("format"))
			return
		}

		orderFile, orderHdr, err := r.FormFile("orderFile")
		if err != nil {
			writeError(w, http.StatusBadRequest, profitSvc.ErrNoOrderFile.Error())
			return
		}
		defer orderFile.Close()

		orders, err := fileio.ReadTable(orderFile, orderHdr.Filename, atoi(r.FormValue("order_header_row"), cfg.OrderHeaderRow))
		if err != nil {
			log.Warn().Err(err).Str("file", orderHdr.Filename).Msg("order file unreadable")
			writeError(w, http.StatusBadRequest, "falha ao ler a planilha de pedidos: "+err.Error())
			return
		}

		costs := readCosts(r, atoi(r.FormValue("cost_header_row"), cfg.CostHeaderRow), log)

		res, err := engine.Run(orders, costs)
		if err != nil {
			var missing *profitSvc.MissingColumnsError
			switch {
			case errors.As(err, &missing):
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error":          err.Error(),
					"missingColumns": missing.Columns,
				})
			case errors.Is(err, profitSvc.ErrNoOrderFile), errors.Is(err, profitSvc.ErrEmptySheet):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				log.Error().Err(err).Msg("process")
				writeError(w, http.StatusInternalServerError, "erro interno")
			}
			return
		}

		if format == fileio.FormatJSON {
			writeJSON(w, http.StatusOK, res)
		} else {
			attachment(w, format, "analise-lucro")
			if err := fileio.WriteOrders(w, format, res); err != nil {
				log.Error().Err(err).Str("format", string(format)).Msg("write export")
				return
			}
		}

		log.Info().
			Str("orders", orderHdr.Filename).
			Int("rows", len(res.Rows)).
			Int("missing", len(res.MissingSKUs)).
			Str("cost_source", res.CostSource).
			Str("format", string(format)).
			Dur("elapsed", time.Since(start)).
			Msg("process done")
	}
}

// readCosts returns nil when no cost file was sent. A file that was sent but
// cannot be parsed is reported through CostInput.Err so the engine falls back
// to the built-in table.
func readCosts(r *http.Request, headerRow int, log zerolog.Logger) *profitSvc.CostInput {
	f, hdr, err := r.FormFile("costFile")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return &profitSvc.CostInput{Err: err}
	}
	defer f.Close()

	tbl, err := fileio.ReadTable(f, hdr.Filename, headerRow)
	if err != nil {
		return &profitSvc.CostInput{Err: err}
	}
	log.Debug().
		Str("file", hdr.Filename).
		Int("rows", len(tbl.Rows)).
		Strs("headers", tbl.Headers).
		Msg("cost file read")
	return &profitSvc.CostInput{Table: tbl}
}

type referenceResponse struct {
	Entries []model.CostEntry        `json:"entries"`
	Stats   profitSvc.CostTableStats `json:"stats"`
}

// Reference serves the engine's fallback cost table, optionally filtered by
// ?q= and exported with ?format=csv|xlsx.
func Reference(logger zerolog.Logger, engine *profitSvc.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
		q := r.URL.Query()

		format, ok := fileio.ParseFormat(q.Get("format"))
		if !ok {
			writeError(w, http.StatusBadRequest, "formato de saída desconhecido: "+q.Get("format"))
			return
		}
		entries := profitSvc.SearchCosts(engine.Fallback(), q.Get("q"))

		var err error
		switch format {
		case fileio.FormatJSON:
			writeJSON(w, http.StatusOK, referenceResponse{
				Entries: entries,
				Stats:   profitSvc.SummarizeCosts(entries),
			})
		case fileio.FormatCSV:
			attachment(w, format, "tabela-custos")
			err = fileio.WriteCostsCSV(w, entries)
		case fileio.FormatXLSX:
			attachment(w, format, "tabela-custos")
			err = fileio.WriteCostsXLSX(w, entries)
		default:
			writeError(w, http.StatusBadRequest, "formato não suportado para a tabela de custos: "+string(format))
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("write cost table")
		}
	}
}
