package main

import (
	"bytes"
	"errors"
	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"sheetCalc/contracts"
	"sheetCalc/mocks"
	"testing"
)

func TestApiController_GetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetCellAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1/A1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("should return cell value", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").
			Return(&contracts.Cell{
				Label:   "A1",
				Formula: "1 + 2",
				Value:   "3",
				Display: "3",
			}, nil)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "A1", response["label"])
		assert.Equal(t, "1 + 2", response["formula"])
		assert.Equal(t, "3", response["value"])
		assert.Equal(t, "", response["error"])
		assert.Equal(t, "3", response["display"])
	})

	t.Run("cell not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, contracts.CellNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.CellNotFoundError.Error(), response["error"])
	})

	t.Run("sheet not found", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.SheetNotFoundError.Error(), response["error"])
	})

	t.Run("custom error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "A1").Return(nil, errors.New("test"))

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test", response["error"])
	})
}

func TestApiController_SetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSetCellAction := func(apiController contracts.ApiController, data map[string]any) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)
		bodyReader := bytes.NewReader(jsonBody)

		router := SetupRouter(apiController, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/A1", bodyReader)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success write", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "=1/0").
			Return(&contracts.Cell{
				Label:   "A1",
				Formula: "1 / 0",
				Value:   "+Inf",
				Error:   contracts.ErrorDivideByZero,
				Display: contracts.ErrorDivideByZero,
			}, nil)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToSetCellAction(apiController, map[string]any{"formula": "=1/0"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "+Inf", response["value"])
		assert.Equal(t, contracts.ErrorDivideByZero, response["display"])
	})

	t.Run("empty formula", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "").
			Return(&contracts.Cell{Label: "A1", Value: "0", Error: contracts.ErrorEmptyFormula, Display: contracts.ErrorEmptyFormula}, nil)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToSetCellAction(apiController, map[string]any{"formula": ""})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing formula", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToSetCellAction(apiController, map[string]any{"value": "1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, response, "error")
		sheetRepository.AssertNotCalled(t, "SetCell")
	})

	t.Run("error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "A1", "=A1").
			Return(nil, contracts.CircularReferenceError)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToSetCellAction(apiController, map[string]any{"formula": "=A1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, contracts.CircularReferenceError.Error(), response["error"])
	})
}

func TestApiController_GetSheetAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetSheetAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		list := contracts.CellList{
			"A1": {Label: "A1", Value: "1", Display: "1"},
			"B1": {Label: "B1", Value: "0", Error: contracts.ErrorInvalidCell, Display: contracts.ErrorInvalidCell},
		}

		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(list, nil)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetSheetAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response, 2)

		for key, cell := range list {
			assert.Contains(t, response, key)

			responseCell := response[key].(map[string]any)
			assert.Equal(t, cell.Value, responseCell["value"])
			assert.Equal(t, cell.Display, responseCell["display"])
		}
	})

	t.Run("not_found_sheet", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetSheetAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.SheetNotFoundError.Error(), response["error"])
	})

	t.Run("error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(nil, errors.New("test"))

		apiController := NewApiController(sheetRepository, nil, nil)

		w := requestToGetSheetAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test", response["error"])
	})
}

func TestApiController_SubscribeAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSubscribeAction := func(apiController contracts.ApiController, data map[string]any) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)

		router := SetupRouter(apiController, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/Sheet1/$b$2/subscribe", bytes.NewReader(jsonBody))
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		webhookDispatcher.On("SetWebhookUrl", "sheet1", "B2", "http://example.com/hook").Return().Once()

		apiController := NewApiController(nil, webhookDispatcher, NewCanonicalizer())

		w := requestToSubscribeAction(apiController, map[string]any{"webhook_url": "http://example.com/hook"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "http://example.com/hook", response["webhook_url"])
	})

	t.Run("invalid_url", func(t *testing.T) {
		webhookDispatcher := mocks.NewWebhookDispatcher(t)

		apiController := NewApiController(nil, webhookDispatcher, NewCanonicalizer())

		w := requestToSubscribeAction(apiController, map[string]any{"webhook_url": "not a url"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, response, "error")
		webhookDispatcher.AssertNotCalled(t, "SetWebhookUrl")
	})
}

func _parseJsonBody(w *httptest.ResponseRecorder) (response map[string]any, err error) {
	err = json.Unmarshal(w.Body.Bytes(), &response)
	return
}
