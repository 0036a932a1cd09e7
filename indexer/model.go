package indexer

// sqlite models

type Checkpoint struct {
	Id       uint64 `gorm:"primaryKey" json:"id"`
	Revision uint64 `json:"revision"`
}

type RequestRow struct {
	Id             uint64 `gorm:"primaryKey" json:"id"`
	Requester      string `json:"requester"`
	Kind           uint64 `json:"kind"`
	Status         uint64 `json:"status"`
	Revision       uint64 `json:"revision"`
	SettleRevision uint64 `json:"settle_revision"`
	CreateTime     int64  `json:"create_time"`
}

type VoteRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Request  uint64 `json:"request"`
	Owner    string `json:"owner"`
	Weight   uint64 `json:"weight"`
	Votes    uint64 `json:"votes"`
	Revoked  bool   `json:"revoked"`
	Revision uint64 `json:"revision"`
}

type DepositRow struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender   string `json:"sender"`
	Amount   uint64 `json:"amount"`
	Revision uint64 `json:"revision"`
	Time     int64  `json:"time"`
}

type PaymentRow struct {
	Id          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender      string `json:"sender"`
	Target      string `json:"target"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
	Revision    uint64 `json:"revision"`
	Time        int64  `json:"time"`
}
