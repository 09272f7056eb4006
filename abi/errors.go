package abi

import "errors"

var errNilBigUInt = errors.New("nil big unsigned integer")

var errNegativeBigUInt = errors.New("negative value for big unsigned integer")

var errInvalidPubKeyLength = errors.New("public key (address) has invalid length")

var errNumberOverflow = errors.New("decoded number does not fit the requested type")

var errNilItemCreator = errors.New("cannot deserialize variadic values: item creator is nil")

var errNilFieldsProvider = errors.New("cannot decode enum: fields provider is nil")

var errNoMoreParts = errors.New("no more parts")
