package model_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gearshare/internal/domains/booking/model"
	"gearshare/shared/failure"
)

func TestParseStateFilter(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    model.StateFilter
		wantErr bool
	}{
		{name: "all", value: "ALL", want: model.StateAll},
		{name: "current", value: "CURRENT", want: model.StateCurrent},
		{name: "past", value: "PAST", want: model.StatePast},
		{name: "future", value: "FUTURE", want: model.StateFuture},
		{name: "waiting", value: "WAITING", want: model.StateWaiting},
		{name: "rejected", value: "REJECTED", want: model.StateRejected},
		{name: "unknown token", value: "SOMETIMES", wantErr: true},
		{name: "approved is not a listing state", value: "APPROVED", wantErr: true},
		{name: "matching is exact", value: "current", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseStateFilter(tt.value)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.True(t, failure.IsKind(err, failure.KindUnsupported))
				assert.EqualError(t, err, "Unknown state: "+tt.value)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
