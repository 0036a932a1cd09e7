package indexer

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/quorumwallet/vaultd/app"
	"github.com/quorumwallet/vaultd/types"
)

// WalletIndexer mirrors committed wallet events into sqlite so history
// queries never touch the live state tree.
type WalletIndexer struct {
	logger        log.Logger
	db            *gorm.DB
	eventHandlers map[string]eventHandler
	Revision      uint64
}

func NewWalletIndexer(logger log.Logger, dbPath string) (*WalletIndexer, error) {
	logger.Info("NewWalletIndexer", "dbPath", dbPath)
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Checkpoint{}, &RequestRow{}, &VoteRow{}, &DepositRow{}, &PaymentRow{}).Error; err != nil {
		return nil, err
	}
	cp := Checkpoint{Id: 1}
	if err = db.First(&cp).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := WalletIndexer{
		logger:        logger.With("module", "indexer"),
		db:            db,
		eventHandlers: map[string]eventHandler{},
		Revision:      cp.Revision,
	}

	c.eventHandlers = map[string]eventHandler{
		types.EventRequestedType: c.handleEventRequested,
		types.EventApprovedType:  c.handleEventApproved,
		types.EventRevokedType:   c.handleEventRevoked,
		types.EventCanceledType:  c.handleEventCanceled,
		types.EventExecutedType:  c.handleEventExecuted,
		types.EventDepositType:   c.handleEventDeposit,
		types.EventPaymentType:   c.handleEventPayment,
	}
	return &c, nil
}

func (c *WalletIndexer) Close() error {
	return c.db.Close()
}

type eventHandler func(ctx context.Context, event types.Event, revision uint64)

// Run drains the commit feed until the feed closes or ctx is done.
func (c *WalletIndexer) Run(ctx context.Context, feed <-chan app.CommitEvents) {
	for {
		select {
		case <-ctx.Done():
			return
		case ce, ok := <-feed:
			if !ok {
				return
			}
			c.handleCommit(ctx, ce)
		}
	}
}

func (c *WalletIndexer) handleCommit(ctx context.Context, ce app.CommitEvents) {
	if ce.Revision <= c.Revision {
		return
	}
	for _, ev := range ce.Events {
		if h, ok := c.eventHandlers[ev.Type]; ok {
			h(ctx, ev, ce.Revision)
		}
	}
	c.Revision = ce.Revision
	cp := Checkpoint{Id: 1, Revision: ce.Revision}
	if err := c.db.Save(&cp).Error; err != nil {
		c.logger.Error("save checkpoint fail", "err", err)
	}
}

func (c *WalletIndexer) handleEventRequested(ctx context.Context, event types.Event, revision uint64) {
	ev := types.DecodeEventRequested(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := RequestRow{
		Id:         ev.RequestId,
		Requester:  ev.Requester.Hex(),
		Kind:       uint64(ev.Kind),
		Status:     uint64(types.StatusPending),
		Revision:   revision,
		CreateTime: time.Now().Unix(),
	}
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save request fail", "err", err)
	}
}

func (c *WalletIndexer) saveVote(event types.Event, revision uint64, revoked bool) {
	ev := types.DecodeVoteEvent(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	vote := VoteRow{
		Request:  ev.RequestId,
		Owner:    ev.Owner.Hex(),
		Weight:   ev.Weight,
		Votes:    ev.Votes,
		Revoked:  revoked,
		Revision: revision,
	}
	if err := c.db.Save(&vote).Error; err != nil {
		c.logger.Error("save vote fail", "err", err)
	}
}

func (c *WalletIndexer) handleEventApproved(ctx context.Context, event types.Event, revision uint64) {
	c.saveVote(event, revision, false)
}

func (c *WalletIndexer) handleEventRevoked(ctx context.Context, event types.Event, revision uint64) {
	c.saveVote(event, revision, true)
}

func (c *WalletIndexer) handleEventCanceled(ctx context.Context, event types.Event, revision uint64) {
	ev := types.DecodeEventCanceled(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	c.settleRequest(ev.RequestId, types.StatusCanceled, revision)
}

func (c *WalletIndexer) handleEventExecuted(ctx context.Context, event types.Event, revision uint64) {
	ev := types.DecodeEventExecuted(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	c.settleRequest(ev.RequestId, types.StatusExecuted, revision)
}

func (c *WalletIndexer) settleRequest(id uint64, status types.RequestStatus, revision uint64) {
	var row RequestRow
	if err := c.db.First(&row, id).Error; err != nil {
		c.logger.Error("get request fail", "id", id, "err", err)
		return
	}
	row.Status = uint64(status)
	row.SettleRevision = revision
	if err := c.db.Save(&row).Error; err != nil {
		c.logger.Error("save request fail", "err", err)
	}
}

func (c *WalletIndexer) handleEventDeposit(ctx context.Context, event types.Event, revision uint64) {
	ev := types.DecodeEventDeposit(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := DepositRow{
		Sender:   ev.Sender.Hex(),
		Amount:   ev.Amount,
		Revision: revision,
		Time:     time.Now().Unix(),
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save deposit fail", "err", err)
	}
}

func (c *WalletIndexer) handleEventPayment(ctx context.Context, event types.Event, revision uint64) {
	ev := types.DecodeEventPayment(event)
	if ev == nil {
		c.logger.Error("decode event fail", "event", event)
		return
	}
	row := PaymentRow{
		Sender:      ev.Sender.Hex(),
		Target:      ev.Target,
		Topic:       ev.Topic,
		Description: ev.Description,
		Amount:      ev.Amount,
		Revision:    revision,
		Time:        time.Now().Unix(),
	}
	if err := c.db.Create(&row).Error; err != nil {
		c.logger.Error("save payment fail", "err", err)
	}
}

func (c *WalletIndexer) GetRequest(id uint64) (row RequestRow, err error) {
	err = c.db.First(&row, id).Error
	return
}

func (c *WalletIndexer) RequestHistory(offset, limit uint64) (rows []RequestRow, err error) {
	err = c.db.Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error
	return
}

func (c *WalletIndexer) VotesByRequest(id uint64) (rows []VoteRow, err error) {
	err = c.db.Where("request = ?", id).Order("id asc").Find(&rows).Error
	return
}

func (c *WalletIndexer) DepositHistory(offset, limit uint64) (rows []DepositRow, err error) {
	err = c.db.Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error
	return
}

func (c *WalletIndexer) PaymentHistory(offset, limit uint64) (rows []PaymentRow, err error) {
	err = c.db.Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error
	return
}
