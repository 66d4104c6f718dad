package patient

import "sort"

// OrderedQueue filters patients with keep and sorts the result by priority
// rank (emergency first), then registration date, oldest first. The sort is
// stable, so patients with identical priority and registration instant keep
// their input order.
func OrderedQueue(patients []*Patient, keep func(*Patient) bool) []*Patient {
	var queue []*Patient
	for _, p := range patients {
		if keep == nil || keep(p) {
			queue = append(queue, p)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		ri, rj := queue[i].Priority.rank(), queue[j].Priority.rank()
		if ri != rj {
			return ri < rj
		}
		return queue[i].RegistrationDate.Before(queue[j].RegistrationDate)
	})

	return queue
}

// PaymentQueue returns the ordered line at the cashier.
func PaymentQueue(patients []*Patient) []*Patient {
	return OrderedQueue(patients, func(p *Patient) bool {
		return p.Status == StatusWaitingPayment
	})
}

// ConsultationQueue returns the ordered waiting room for one department.
func ConsultationQueue(patients []*Patient, dept string) []*Patient {
	return OrderedQueue(patients, func(p *Patient) bool {
		return p.Status == StatusWaitingConsultation && p.Department == dept
	})
}
