package api

import (
	"net/http"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/quorumwallet/vaultd/app"
	"github.com/quorumwallet/vaultd/indexer"
	"github.com/quorumwallet/vaultd/state"
	"github.com/quorumwallet/vaultd/types"
)

// Service exposes the wallet over HTTP. Live-state queries go through the
// app; history endpoints are served from the indexer.
type Service struct {
	engine     *gin.Engine
	app        *app.WalletApp
	indexer    *indexer.WalletIndexer
	listenAddr string
	logger     log.Logger
}

func NewService(listenAddr string, wapp *app.WalletApp, idx *indexer.WalletIndexer, logger log.Logger) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		app:        wapp,
		indexer:    idx,
		listenAddr: listenAddr,
		logger:     logger.With("module", "api"),
	}
	s.engine.POST("/tx", s.handleSubmitTx)
	s.engine.POST("/checkTx", s.handleCheckTx)
	s.engine.POST("/getRequest", s.handleGetRequest)
	s.engine.POST("/getRequestIdsByExecution", s.handleGetRequestIdsByExecution)
	s.engine.POST("/getRequestIdsByOwner", s.handleGetRequestIdsByOwner)
	s.engine.POST("/getRequestIdsByType", s.handleGetRequestIdsByType)
	s.engine.POST("/isOwnerVoted", s.handleIsOwnerVoted)
	s.engine.POST("/getNonce", s.handleGetNonce)
	s.engine.GET("/owners", s.handleGetOwners)
	s.engine.GET("/wallet", s.handleGetWallet)
	s.engine.POST("/getRequestHistory", s.handleGetRequestHistory)
	s.engine.POST("/getDeposits", s.handleGetDeposits)
	s.engine.POST("/getPayments", s.handleGetPayments)
	return s
}

func (s *Service) Start() error {
	return s.engine.Run(s.listenAddr)
}

type SubmitTxResponse struct {
	Hash   common.Hash   `json:"hash"`
	Events []types.Event `json:"events"`
}

func (s *Service) handleSubmitTx(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, hash, err := s.app.Submit(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if events == nil {
		events = make([]types.Event, 0)
	}
	c.JSON(http.StatusOK, SubmitTxResponse{Hash: hash, Events: events})
}

func (s *Service) handleCheckTx(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.app.CheckTx(c.Request.Context(), raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type GetRequestReq struct {
	RequestId uint64 `json:"requestId"`
}

func (s *Service) handleGetRequest(c *gin.Context) {
	var requestData GetRequestReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var r *types.Request
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		r, err1 = st.GetRequest(requestData.RequestId)
		return err1
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

type GetRequestIdsByExecutionReq struct {
	Executed bool   `json:"executed"`
	Offset   uint64 `json:"offset"`
	Limit    uint64 `json:"limit"`
}

type GetRequestIdsResponse struct {
	RequestIds []uint64 `json:"requestIds"`
}

func (s *Service) handleGetRequestIdsByExecution(c *gin.Context) {
	var requestData GetRequestIdsByExecutionReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var ids []uint64
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		ids, err1 = st.RequestIdsByExecution(requestData.Executed, requestData.Offset, requestData.Limit)
		return err1
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetRequestIdsResponse{RequestIds: ids})
}

type GetRequestIdsByOwnerReq struct {
	Owner    string `json:"owner"`
	Executed bool   `json:"executed"`
	Offset   uint64 `json:"offset"`
	Limit    uint64 `json:"limit"`
}

func (s *Service) handleGetRequestIdsByOwner(c *gin.Context) {
	var requestData GetRequestIdsByOwnerReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var ids []uint64
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		ids, err1 = st.RequestIdsByOwner(common.HexToAddress(requestData.Owner), requestData.Executed, requestData.Offset, requestData.Limit)
		return err1
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetRequestIdsResponse{RequestIds: ids})
}

type GetRequestIdsByTypeReq struct {
	Kind     uint64 `json:"kind"`
	Executed bool   `json:"executed"`
	Offset   uint64 `json:"offset"`
	Limit    uint64 `json:"limit"`
}

func (s *Service) handleGetRequestIdsByType(c *gin.Context) {
	var requestData GetRequestIdsByTypeReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var ids []uint64
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		ids, err1 = st.RequestIdsByType(types.RequestKind(requestData.Kind), requestData.Executed, requestData.Offset, requestData.Limit)
		return err1
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetRequestIdsResponse{RequestIds: ids})
}

type IsOwnerVotedReq struct {
	Owner     string `json:"owner"`
	RequestId uint64 `json:"requestId"`
}

func (s *Service) handleIsOwnerVoted(c *gin.Context) {
	var requestData IsOwnerVotedReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var voted bool
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		voted, err1 = st.IsOwnerVoted(common.HexToAddress(requestData.Owner), requestData.RequestId)
		return err1
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted})
}

type GetNonceReq struct {
	Address string `json:"address"`
}

func (s *Service) handleGetNonce(c *gin.Context) {
	var requestData GetNonceReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var nonce uint64
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		nonce, err1 = st.GetNonce(common.HexToAddress(requestData.Address))
		return err1
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

func (s *Service) handleGetOwners(c *gin.Context) {
	var owners []types.Owner
	err := s.app.DB().View(func(st *state.State) error {
		var err1 error
		owners, err1 = st.Owners()
		return err1
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": owners})
}

func (s *Service) handleGetWallet(c *gin.Context) {
	value, err := s.app.Query(c.Request.Context(), "/wallet/", nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", value)
}

type RequestInfo struct {
	Request indexer.RequestRow `json:"request"`
	Votes   []indexer.VoteRow  `json:"votes"`
}

type GetRequestHistoryReq struct {
	RequestId uint64 `json:"requestId"`
	Offset    uint64 `json:"offset"`
	Limit     uint64 `json:"limit"`
}

type GetRequestHistoryResponse struct {
	Requests []RequestInfo `json:"requests"`
}

func (s *Service) handleGetRequestHistory(c *gin.Context) {
	var response GetRequestHistoryResponse
	response.Requests = make([]RequestInfo, 0)
	var requestData GetRequestHistoryReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if requestData.RequestId != 0 {
		row, err := s.indexer.GetRequest(requestData.RequestId)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		votes, err := s.indexer.VotesByRequest(requestData.RequestId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Requests = append(response.Requests, RequestInfo{Request: row, Votes: votes})
		c.JSON(http.StatusOK, response)
		return
	}

	rows, err := s.indexer.RequestHistory(requestData.Offset, requestData.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, row := range rows {
		votes, err := s.indexer.VotesByRequest(row.Id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Requests = append(response.Requests, RequestInfo{Request: row, Votes: votes})
	}
	c.JSON(http.StatusOK, response)
}

type HistoryPageReq struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

func (s *Service) handleGetDeposits(c *gin.Context) {
	var requestData HistoryPageReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := s.indexer.DepositHistory(requestData.Offset, requestData.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": rows})
}

func (s *Service) handleGetPayments(c *gin.Context) {
	var requestData HistoryPageReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := s.indexer.PaymentHistory(requestData.Offset, requestData.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": rows})
}
