package types

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/justmint/JustMint/log"
	bin "github.com/streamingfast/binary"
)

// TransactionInstruction interface
type TransactionInstruction interface {
	Accounts() []*AccountMeta // returns the list of accounts the instructions requires
	ProgramID() PublicKey     // the programID the instruction acts on
	Data() ([]byte, error)    // the binary encoded instructions
}

// TransactionOption interface
type TransactionOption interface {
	apply(opts *transactionOptions)
}

type transactionOptions struct {
	payer PublicKey
}

type transactionOptionFunc func(opts *transactionOptions)

func (f transactionOptionFunc) apply(opts *transactionOptions) {
	f(opts)
}

// TransactionPayer tx payer
func TransactionPayer(payer PublicKey) TransactionOption {
	return transactionOptionFunc(func(opts *transactionOptions) { opts.payer = payer })
}

// NewTransaction new tx
func NewTransaction(instructions []TransactionInstruction, blockHash Hash, opts ...TransactionOption) (*Transaction, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("requires at-least one instruction to create a transaction")
	}

	options := transactionOptions{}
	for _, opt := range opts {
		opt.apply(&options)
	}

	feePayer := options.payer
	if feePayer.IsZero() {
		found := false
		for _, act := range instructions[0].Accounts() {
			if act.IsSigner {
				feePayer = act.PublicKey
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("cannot determine fee payer. You can either pass the fee payer via the 'TransactionPayer' option parameter or it fallback to the first instruction's first signer")
		}
	}

	programIDs := []PublicKey{}
	accounts := []*AccountMeta{}
	for _, instruction := range instructions {
		accounts = append(accounts, instruction.Accounts()...)
		programIDs = append(programIDs, instruction.ProgramID())
	}

	// Add programID to the account list
	for _, programID := range programIDs {
		accounts = append(accounts, &AccountMeta{
			PublicKey:  programID,
			IsSigner:   false,
			IsWritable: false,
		})
	}

	// Sort. Prioritizing first by signer, then by writable
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].less(accounts[j])
	})

	uniqAccountsMap := make(map[PublicKey]int, 5)
	uniqAccounts := make([]*AccountMeta, 0, 5)
	for _, acc := range accounts {
		if index, found := uniqAccountsMap[acc.PublicKey]; found {
			uniqAccounts[index].IsWritable = uniqAccounts[index].IsWritable || acc.IsWritable
			continue
		}
		uniqAccounts = append(uniqAccounts, acc)
		uniqAccountsMap[acc.PublicKey] = len(uniqAccounts) - 1
	}

	log.Debug("unique account sorted", "account_count", len(uniqAccounts))
	feePayerIndex := -1
	if idx, exist := uniqAccountsMap[feePayer]; exist {
		feePayerIndex = idx
	}
	log.Debug("current fee payer index", "fee_payer_index", feePayerIndex)

	finalAccounts := uniqAccounts
	// Move fee payer to the front
	if feePayerIndex != 0 {
		if feePayerIndex < 0 {
			// fee payer is not part of accounts we want to add it
			finalAccounts = make([]*AccountMeta, len(uniqAccounts)+1)
			copy(finalAccounts[1:], uniqAccounts)
		} else {
			copy(finalAccounts[1:], uniqAccounts[0:feePayerIndex])
		}
	}
	finalAccounts[0] = &AccountMeta{
		PublicKey:  feePayer,
		IsSigner:   true,
		IsWritable: true,
	}

	message := Message{
		RecentBlockhash: blockHash,
	}
	accountKeyIndex := make(map[PublicKey]uint8, len(finalAccounts))
	for idx, acc := range finalAccounts {
		message.AccountKeys = append(message.AccountKeys, acc.PublicKey)
		accountKeyIndex[acc.PublicKey] = uint8(idx)
		if acc.IsSigner {
			message.Header.NumRequiredSignatures++
			if !acc.IsWritable {
				message.Header.NumReadonlySignedAccounts++
			}
			continue
		}

		if !acc.IsWritable {
			message.Header.NumReadonlyUnsignedAccounts++
		}
	}
	log.Debug("message header compiled",
		"num_required_signatures", message.Header.NumRequiredSignatures,
		"num_readonly_signed_accounts", message.Header.NumReadonlySignedAccounts,
		"num_readonly_unsigned_accounts", message.Header.NumReadonlyUnsignedAccounts,
	)

	for trxIdx, instruction := range instructions {
		accounts = instruction.Accounts()
		accountIndex := make(Uint8Arr, len(accounts))
		for idx, acc := range accounts {
			accountIndex[idx] = accountKeyIndex[acc.PublicKey]
		}
		data, err := instruction.Data()
		if err != nil {
			return nil, fmt.Errorf("unable to encode instructions [%d]: %w", trxIdx, err)
		}
		message.Instructions = append(message.Instructions, CompiledInstruction{
			ProgramIDIndex: accountKeyIndex[instruction.ProgramID()],
			AccountCount:   bin.Varuint16(uint16(len(accountIndex))),
			Accounts:       accountIndex,
			DataLength:     bin.Varuint16(uint16(len(data))),
			Data:           data,
		})
	}

	return &Transaction{
		Message: message,
	}, nil
}

// Transaction type
type Transaction struct {
	Signatures []Signature `json:"signatures"`
	Message    Message     `json:"message"`
}

// Message type
type Message struct {
	Header          MessageHeader         `json:"header"`
	AccountKeys     []PublicKey           `json:"accountKeys"`
	RecentBlockhash Hash                  `json:"recentBlockhash"`
	Instructions    []CompiledInstruction `json:"instructions"`
}

// MessageHeader type
type MessageHeader struct {
	NumRequiredSignatures       uint8 `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   uint8 `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// CompiledInstruction type
type CompiledInstruction struct {
	ProgramIDIndex uint8         `json:"programIdIndex"`
	AccountCount   bin.Varuint16 `json:"-" bin:"sizeof=Accounts"`
	Accounts       Uint8Arr      `json:"accounts"`
	DataLength     bin.Varuint16 `json:"-" bin:"sizeof=Data"`
	Data           Base58        `json:"data"`
}

// AccountMetaList get account meta list
func (m *Message) AccountMetaList() (out []*AccountMeta) {
	for _, a := range m.AccountKeys {
		out = append(out, &AccountMeta{
			PublicKey:  a,
			IsSigner:   m.IsSigner(a),
			IsWritable: m.IsWritable(a),
		})
	}
	return out
}

// ResolveProgramIDIndex resolve programID index
func (m *Message) ResolveProgramIDIndex(programIDIndex uint8) (PublicKey, error) {
	if int(programIDIndex) < len(m.AccountKeys) {
		return m.AccountKeys[programIDIndex], nil
	}
	return PublicKey{}, fmt.Errorf("programID index not found %d", programIDIndex)
}

// TouchAccount touch account
func (m *Message) TouchAccount(account PublicKey) bool {
	for _, a := range m.AccountKeys {
		if a.Equals(account) {
			return true
		}
	}
	return false
}

// IsSigner is signer
func (m *Message) IsSigner(account PublicKey) bool {
	for idx, acc := range m.AccountKeys {
		if acc.Equals(account) {
			return idx < int(m.Header.NumRequiredSignatures)
		}
	}
	return false
}

// IsWritable is writable
func (m *Message) IsWritable(account PublicKey) bool {
	index := 0
	found := false
	for idx, acc := range m.AccountKeys {
		if acc.Equals(account) {
			found = true
			index = idx
			break
		}
	}
	if !found {
		return false
	}
	h := m.Header
	return (index < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)) ||
		((index >= int(h.NumRequiredSignatures)) &&
			(index < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)))
}

// SignerKeys signer keys
func (m *Message) SignerKeys() []PublicKey {
	return m.AccountKeys[0:m.Header.NumRequiredSignatures]
}

// ResolveInstructionAccounts resolve instruction accounts
func (ci *CompiledInstruction) ResolveInstructionAccounts(message *Message) (out []*AccountMeta) {
	metas := message.AccountMetaList()
	for _, acct := range ci.Accounts {
		out = append(out, metas[acct])
	}
	return
}

type privateKeyGetter func(key PublicKey) *PrivateKey

// Sign sign with private key
func (t *Transaction) Sign(getter privateKeyGetter) (out []Signature, err error) {
	messageCnt, err := t.Message.Serialize()
	if err != nil {
		return nil, fmt.Errorf("unable to encode message for signing: %w", err)
	}

	signerKeys := t.Message.SignerKeys()

	for _, key := range signerKeys {
		privateKey := getter(key)
		if privateKey == nil {
			return nil, fmt.Errorf("signer key %q not found. Ensure all the signer keys are in the vault", key.String())
		}

		s, err := privateKey.Sign(messageCnt)
		if err != nil {
			return nil, fmt.Errorf("failed to signed with key %q: %w", key.String(), err)
		}

		t.Signatures = append(t.Signatures, s)
	}
	return t.Signatures, nil
}

// Serialize message to solana wire format
func (m *Message) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewEncoder(buf)
	if err := encoder.WriteUint8(m.Header.NumRequiredSignatures); err != nil {
		return nil, err
	}
	if err := encoder.WriteUint8(m.Header.NumReadonlySignedAccounts); err != nil {
		return nil, err
	}
	if err := encoder.WriteUint8(m.Header.NumReadonlyUnsignedAccounts); err != nil {
		return nil, err
	}
	if err := encoder.Encode(bin.Varuint16(uint16(len(m.AccountKeys)))); err != nil {
		return nil, err
	}
	for _, key := range m.AccountKeys {
		if err := encoder.Encode(key); err != nil {
			return nil, err
		}
	}
	if err := encoder.Encode(m.RecentBlockhash); err != nil {
		return nil, err
	}
	if err := encoder.Encode(bin.Varuint16(uint16(len(m.Instructions)))); err != nil {
		return nil, err
	}
	for i := range m.Instructions {
		if err := encoder.Encode(&m.Instructions[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Serialize wire transaction with given serialized message content
func (t *Transaction) Serialize(messageCnt []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewEncoder(buf)
	if err := encoder.Encode(bin.Varuint16(uint16(len(t.Signatures)))); err != nil {
		return nil, err
	}
	for _, sig := range t.Signatures {
		if err := encoder.Encode(sig); err != nil {
			return nil, err
		}
	}
	if _, err := buf.Write(messageCnt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeAll serialize signatures and message to wire format
func (t *Transaction) SerializeAll() ([]byte, error) {
	messageCnt, err := t.Message.Serialize()
	if err != nil {
		return nil, fmt.Errorf("unable to encode message: %w", err)
	}
	return t.Serialize(messageCnt)
}
