package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"bracket-engine/brackets"
	"bracket-engine/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // programmer error: non-pointer destination
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", slog.Any("error", err))
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusNotFound, err.Error())
}

func conflictResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusConflict, err.Error())
}

// mapEngineErrorToHTTP translates the service/engine error taxonomy:
// unknown references are 404, state conflicts 409, validation 400,
// anything unexpected 500.
func mapEngineErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	// References.
	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, brackets.ErrMatchNotFound),
		errors.Is(err, brackets.ErrGroupNotFound),
		errors.Is(err, brackets.ErrGameNotFound):
		notFoundResponse(w, err)

	// State conflicts.
	case errors.Is(err, brackets.ErrMatchAlreadyDecided),
		errors.Is(err, brackets.ErrMatchNotReady),
		errors.Is(err, brackets.ErrByeMatch),
		errors.Is(err, brackets.ErrRoundNotComplete),
		errors.Is(err, brackets.ErrNoRoundsRemaining),
		errors.Is(err, brackets.ErrGameAlreadyComplete),
		errors.Is(err, brackets.ErrStageComplete),
		errors.Is(err, brackets.ErrBracketIncomplete),
		errors.Is(err, brackets.ErrPerGameReporting):
		conflictResponse(w, err)

	// Validation.
	case errors.Is(err, brackets.ErrNotEnoughParticipants),
		errors.Is(err, brackets.ErrUnknownBracketType),
		errors.Is(err, brackets.ErrWrongBracketType),
		errors.Is(err, brackets.ErrInvalidPlacements),
		errors.Is(err, brackets.ErrInvalidLobbySize),
		errors.Is(err, brackets.ErrWinnerNotInMatch),
		errors.Is(err, services.ErrTournamentNameRequired),
		errors.Is(err, services.ErrFormatRequired),
		errors.Is(err, services.ErrNotASwissBracket),
		errors.Is(err, services.ErrNotABattleRoyaleBracket):
		badRequestResponse(w, err)

	default:
		serverErrorResponse(w, err)
	}
}
