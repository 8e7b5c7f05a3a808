package domain

import (
	"fmt"
	"strings"
)

// Processor hands a transaction to a payment provider and returns its confirmation.
type Processor interface {
	Process(t Transaction) string
}

const (
	BankTransfer = "bank-transfer"
	MobileMoney  = "mobile-money"
	CryptoWallet = "crypto-wallet"
)

// Processors returns the names of all processors.
func Processors() []string {
	return []string{BankTransfer, MobileMoney, CryptoWallet}
}

// NewProcessor returns the processor with the given name.
func NewProcessor(name string) (Processor, error) { //nolint:ireturn // processor is chosen at runtime
	switch name {
	case BankTransfer:
		return bankTransferProcessor{}, nil
	case MobileMoney:
		return mobileMoneyProcessor{}, nil
	case CryptoWallet:
		return cryptoWalletProcessor{}, nil
	}

	return nil, fmt.Errorf("%w: %q, use one of: %s", ErrUnknownProcessor, name, strings.Join(Processors(), ", "))
}

type bankTransferProcessor struct{}

func (bankTransferProcessor) Process(t Transaction) string {
	return fmt.Sprintf("[BankTransfer] Processed %s for '%s'.", t.Amount, t.Category)
}

type mobileMoneyProcessor struct{}

func (mobileMoneyProcessor) Process(t Transaction) string {
	return fmt.Sprintf("[MobileMoney] Payment of %s tagged '%s' completed.", t.Amount, t.Category)
}

type cryptoWalletProcessor struct{}

func (cryptoWalletProcessor) Process(t Transaction) string {
	return fmt.Sprintf("[CryptoWallet] On-chain payment %s categorised as '%s' broadcast.", t.Amount, t.Category)
}
