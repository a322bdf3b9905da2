// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package state

import "github.com/n42blockchain/N42/common/types"

// accessList is the EIP-2930/2929 warm set: every address and (address,
// slot) pair touched by the current transaction so far. addresses maps an
// address to the index of its first touched slot in slots, or -1 if the
// address itself was added without any slot.
type accessList struct {
	addresses map[types.Address]int
	slots     []map[types.Hash]struct{}
}

// newAccessList creates a new, empty access list.
func newAccessList() *accessList {
	return &accessList{
		addresses: make(map[types.Address]int),
	}
}

// ContainsAddress reports whether the address is in the access list.
func (al *accessList) ContainsAddress(address types.Address) bool {
	_, ok := al.addresses[address]
	return ok
}

// Contains reports whether (address, slot) is in the access list, broken
// down into whether the address is present and whether the slot is.
func (al *accessList) Contains(address types.Address, slot types.Hash) (addressPresent bool, slotPresent bool) {
	idx, ok := al.addresses[address]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotPresent = al.slots[idx][slot]
	return true, slotPresent
}

// AddAddress adds an address to the access list, returning true if it was
// not already present.
func (al *accessList) AddAddress(address types.Address) bool {
	if al.ContainsAddress(address) {
		return false
	}
	al.addresses[address] = -1
	return true
}

// AddSlot adds (address, slot) to the access list, returning whether the
// address and the slot were newly added respectively.
func (al *accessList) AddSlot(address types.Address, slot types.Hash) (addrChange bool, slotChange bool) {
	idx, addrPresent := al.addresses[address]
	if !addrPresent || idx == -1 {
		al.slots = append(al.slots, map[types.Hash]struct{}{slot: {}})
		al.addresses[address] = len(al.slots) - 1
		return !addrPresent, true
	}

	slotMap := al.slots[idx]
	if _, ok := slotMap[slot]; ok {
		return false, false
	}
	slotMap[slot] = struct{}{}
	return false, true
}

// DeleteSlot removes (address, slot) from the access list. Used only to
// unwind a journal entry in exactly the reverse order it was added, so it
// never needs to handle an out-of-order delete.
func (al *accessList) DeleteSlot(address types.Address, slot types.Hash) {
	idx, ok := al.addresses[address]
	if !ok {
		return
	}
	delete(al.slots[idx], slot)
}

// DeleteAddress removes an address (and, implicitly, any slots recorded
// under it) from the access list. Used only to unwind a journal entry.
func (al *accessList) DeleteAddress(address types.Address) {
	delete(al.addresses, address)
}

// Copy returns an independent copy of the access list.
func (al *accessList) Copy() *accessList {
	cp := &accessList{
		addresses: make(map[types.Address]int, len(al.addresses)),
		slots:     make([]map[types.Hash]struct{}, len(al.slots)),
	}
	for k, v := range al.addresses {
		cp.addresses[k] = v
	}
	for i, slotMap := range al.slots {
		newSlots := make(map[types.Hash]struct{}, len(slotMap))
		for k := range slotMap {
			newSlots[k] = struct{}{}
		}
		cp.slots[i] = newSlots
	}
	return cp
}
